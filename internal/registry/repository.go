package registry

import (
	"context"
	"errors"
)

var (
	ErrUnauthorized     = errors.New("caller is not authorized")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoEducators      = errors.New("educator set is empty")
	ErrInvalidIdentity  = errors.New("identity is required")
)

// QuestionRepository owns the ordered question sequence. AppendQuestion
// allocates the next sequential id, starting at 0, and returns it.
type QuestionRepository interface {
	AppendQuestion(ctx context.Context, text string, answerHash AnswerHash) (uint64, error)
	GetQuestion(ctx context.Context, questionID uint64) (Question, error)
	ListQuestions(ctx context.Context) ([]PublicQuestion, error)
	CountQuestions(ctx context.Context) (int, error)
}

// RoleRepository maps identities to power levels. PowerOf is total: an
// absent identity is Unregistered, never an error.
type RoleRepository interface {
	PowerOf(ctx context.Context, identity string) (PowerLevel, error)
	SetRole(ctx context.Context, identity string, power PowerLevel) error
	CountEducators(ctx context.Context) (int, error)
}
