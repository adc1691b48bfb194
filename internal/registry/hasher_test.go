package registry

import "testing"

func TestHashAnswerDeterministic(t *testing.T) {
	first := HashAnswer("Blue")
	second := HashAnswer("Blue")
	if first != second {
		t.Fatalf("same answer produced different digests: %s vs %s", first, second)
	}
}

func TestHashAnswerDivergesOnDifferentInput(t *testing.T) {
	pairs := [][2]string{
		{"Blue", "blue"},
		{"4", "four"},
		{"", " "},
		{"a", "a "},
	}
	for _, pair := range pairs {
		if HashAnswer(pair[0]) == HashAnswer(pair[1]) {
			t.Fatalf("distinct answers %q and %q collided", pair[0], pair[1])
		}
	}
}

func TestHashAnswerAcceptsEmptyString(t *testing.T) {
	empty := HashAnswer("")
	if empty == (AnswerHash{}) {
		t.Fatalf("digest of empty string must not be the zero hash")
	}
}

func TestAnswerHashStringRoundTrip(t *testing.T) {
	original := HashAnswer("What color is the sky?")

	parsed, err := ParseAnswerHash(original.String())
	if err != nil {
		t.Fatalf("ParseAnswerHash failed: %v", err)
	}
	if parsed != original {
		t.Fatalf("round trip mismatch: %s vs %s", parsed, original)
	}
}

func TestParseAnswerHashRejectsBadInput(t *testing.T) {
	if _, err := ParseAnswerHash("not-hex"); err == nil {
		t.Fatalf("expected error for non-hex input")
	}
	if _, err := ParseAnswerHash("abcd"); err == nil {
		t.Fatalf("expected error for short input")
	}
}
