package registry

// PowerLevel gates mutating operations. An identity holds at most one
// explicit role at a time; absence of a role is Unregistered.
type PowerLevel string

const (
	PowerEducator     PowerLevel = "educator"
	PowerUser         PowerLevel = "user"
	PowerUnregistered PowerLevel = "unregistered"
)

// ParsePowerLevel maps a stored role string back to a PowerLevel. Unknown
// values degrade to Unregistered so a corrupt row can never grant authority.
func ParsePowerLevel(value string) PowerLevel {
	switch PowerLevel(value) {
	case PowerEducator:
		return PowerEducator
	case PowerUser:
		return PowerUser
	default:
		return PowerUnregistered
	}
}
