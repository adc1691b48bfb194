package registry

// Question pairs a prompt with the digest of its correct answer. Both are
// immutable after creation; the plaintext answer is hashed at insertion
// and never stored.
type Question struct {
	PublicQuestion
	AnswerHash AnswerHash
}

// PublicQuestion is the projection returned to callers.
type PublicQuestion struct {
	QuestionID uint64 `json:"question_id"`
	Text       string `json:"text"`
}
