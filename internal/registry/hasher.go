package registry

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// AnswerHash is the fixed-size digest of a canonical answer string. Only
// equality checks are ever performed on it; the plaintext answer is not
// recoverable from stored state.
type AnswerHash [blake2b.Size256]byte

// HashAnswer digests an answer. Any string is valid input, and the output
// must be identical across hosts and executions or verification breaks.
func HashAnswer(answer string) AnswerHash {
	return blake2b.Sum256([]byte(answer))
}

func (h AnswerHash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseAnswerHash decodes the hex form produced by String.
func ParseAnswerHash(encoded string) (AnswerHash, error) {
	var hash AnswerHash
	decoded, err := hex.DecodeString(encoded)
	if err != nil {
		return AnswerHash{}, fmt.Errorf("decode answer hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return AnswerHash{}, fmt.Errorf("answer hash must be %d bytes, got %d", len(hash), len(decoded))
	}
	copy(hash[:], decoded)
	return hash, nil
}
