package registry

import (
	"context"
	"sync"
)

// MemoryStore keeps the full registry state in process memory. It backs
// embedded hosts and tests. The mutex covers both the question sequence
// and the role map so id allocation and role checks stay consistent for
// callers that do not serialize invocations themselves.
type MemoryStore struct {
	mu        sync.Mutex
	questions []Question
	roles     map[string]PowerLevel
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{roles: make(map[string]PowerLevel)}
}

func (m *MemoryStore) AppendQuestion(_ context.Context, text string, answerHash AnswerHash) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	questionID := uint64(len(m.questions))
	m.questions = append(m.questions, Question{
		PublicQuestion: PublicQuestion{QuestionID: questionID, Text: text},
		AnswerHash:     answerHash,
	})
	return questionID, nil
}

func (m *MemoryStore) GetQuestion(_ context.Context, questionID uint64) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if questionID >= uint64(len(m.questions)) {
		return Question{}, ErrQuestionNotFound
	}
	return m.questions[questionID], nil
}

func (m *MemoryStore) ListQuestions(_ context.Context) ([]PublicQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing := make([]PublicQuestion, 0, len(m.questions))
	for _, question := range m.questions {
		listing = append(listing, question.PublicQuestion)
	}
	return listing, nil
}

func (m *MemoryStore) CountQuestions(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.questions), nil
}

func (m *MemoryStore) PowerOf(_ context.Context, identity string) (PowerLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	power, ok := m.roles[identity]
	if !ok {
		return PowerUnregistered, nil
	}
	return power, nil
}

func (m *MemoryStore) SetRole(_ context.Context, identity string, power PowerLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[identity] = power
	return nil
}

func (m *MemoryStore) CountEducators(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, power := range m.roles {
		if power == PowerEducator {
			count++
		}
	}
	return count, nil
}
