package registry

import (
	"context"
	"strings"
)

// Service is the registry entry point visible to hosts: it wires the
// host-supplied caller identity through access control and the question
// store. Each method is atomic from the caller's perspective; a failing
// call leaves stored state untouched.
type Service struct {
	questions QuestionRepository
	access    *AccessControl
}

func NewService(questions QuestionRepository, roles RoleRepository) *Service {
	return &Service{
		questions: questions,
		access:    NewAccessControl(roles),
	}
}

// Init seeds the educator set at deployment. At least one Educator must
// exist afterwards or no question could ever be added, so Init fails with
// ErrNoEducators when the initial set is empty and the store holds none.
// Re-running Init against an already seeded store is safe.
func (s *Service) Init(ctx context.Context, initialEducators []string) error {
	seeded := 0
	for _, identity := range initialEducators {
		identity = strings.TrimSpace(identity)
		if identity == "" {
			continue
		}
		if err := s.access.roles.SetRole(ctx, identity, PowerEducator); err != nil {
			return err
		}
		seeded++
	}
	if seeded > 0 {
		return nil
	}

	existing, err := s.access.roles.CountEducators(ctx)
	if err != nil {
		return err
	}
	if existing == 0 {
		return ErrNoEducators
	}
	return nil
}

// AddQuestion hashes the answer and appends a new question, returning its
// id. Educator only. The plaintext answer is discarded after hashing.
func (s *Service) AddQuestion(ctx context.Context, requester, text, answer string) (uint64, error) {
	if err := s.access.RequireEducator(ctx, requester); err != nil {
		return 0, err
	}
	return s.questions.AppendQuestion(ctx, text, HashAnswer(answer))
}

// CheckAnswer is open to any caller and side-effect free: it reports
// whether the attempt's digest matches the stored one.
func (s *Service) CheckAnswer(ctx context.Context, questionID uint64, attempt string) (bool, error) {
	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return false, err
	}
	return question.AnswerHash == HashAnswer(attempt), nil
}

func (s *Service) GetQuestion(ctx context.Context, questionID uint64) (PublicQuestion, error) {
	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return PublicQuestion{}, err
	}
	return question.PublicQuestion, nil
}

// ListQuestions returns (id, text) pairs in insertion order, recomputed
// fresh on each call.
func (s *Service) ListQuestions(ctx context.Context) ([]PublicQuestion, error) {
	return s.questions.ListQuestions(ctx)
}

func (s *Service) CountQuestions(ctx context.Context) (int, error) {
	return s.questions.CountQuestions(ctx)
}

func (s *Service) RegisterUser(ctx context.Context, identity string) error {
	return s.access.RegisterUser(ctx, identity)
}

func (s *Service) GrantEducator(ctx context.Context, requester, target string) error {
	return s.access.GrantEducator(ctx, requester, target)
}

func (s *Service) PowerOf(ctx context.Context, identity string) (PowerLevel, error) {
	return s.access.PowerOf(ctx, identity)
}
