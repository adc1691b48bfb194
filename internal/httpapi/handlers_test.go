package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quiz-registry/internal/registry"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := registry.NewMemoryStore()
	service := registry.NewService(store, store)
	if err := service.Init(context.Background(), []string{"educator-token"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return NewRouter(service)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set(CallerTokenHeader, token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func addTestQuestion(t *testing.T, router http.Handler, text, answer string) uint64 {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/questions", "educator-token", addQuestionRequest{
		Text:   text,
		Answer: answer,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add question status = %d, body %s", rec.Code, rec.Body.String())
	}

	var payload addQuestionResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode add question response: %v", err)
	}
	return payload.QuestionID
}

func TestAddQuestionByEducator(t *testing.T) {
	router := newTestRouter(t)

	if got := addTestQuestion(t, router, "2+2?", "4"); got != 0 {
		t.Fatalf("first question id = %d, want 0", got)
	}
	if got := addTestQuestion(t, router, "Sky color?", "Blue"); got != 1 {
		t.Fatalf("second question id = %d, want 1", got)
	}
}

func TestAddQuestionUnauthorized(t *testing.T) {
	router := newTestRouter(t)

	for _, token := range []string{"", "stranger-token"} {
		rec := doRequest(t, router, http.MethodPost, "/questions", token, addQuestionRequest{
			Text:   "2+2?",
			Answer: "4",
		})
		if rec.Code != http.StatusForbidden {
			t.Fatalf("token %q: status = %d, want %d", token, rec.Code, http.StatusForbidden)
		}
	}

	// Rejected adds must leave the listing unchanged.
	rec := doRequest(t, router, http.MethodGet, "/questions", "", nil)
	var listing questionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.QuestionCount != 0 {
		t.Fatalf("question count after rejected adds = %d, want 0", listing.QuestionCount)
	}
}

func TestAddQuestionValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/questions", "educator-token", addQuestionRequest{Answer: "4"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank text status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	req := httptest.NewRequest(http.MethodPost, "/questions", strings.NewReader("not json"))
	req.Header.Set(CallerTokenHeader, "educator-token")
	raw := httptest.NewRecorder()
	router.ServeHTTP(raw, req)
	if raw.Code != http.StatusBadRequest {
		t.Fatalf("invalid JSON status = %d, want %d", raw.Code, http.StatusBadRequest)
	}
}

func TestListQuestionsIsOpenAndOrdered(t *testing.T) {
	router := newTestRouter(t)
	addTestQuestion(t, router, "first", "a")
	addTestQuestion(t, router, "second", "b")

	rec := doRequest(t, router, http.MethodGet, "/questions", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var payload questionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if payload.QuestionCount != 2 || len(payload.Questions) != 2 {
		t.Fatalf("unexpected listing payload: %+v", payload)
	}
	if payload.Questions[0].Text != "first" || payload.Questions[1].Text != "second" {
		t.Fatalf("listing order not preserved: %+v", payload.Questions)
	}
	if strings.Contains(rec.Body.String(), "answer") {
		t.Fatalf("listing leaked answer material: %s", rec.Body.String())
	}
}

func TestGetQuestion(t *testing.T) {
	router := newTestRouter(t)
	addTestQuestion(t, router, "2+2?", "4")

	rec := doRequest(t, router, http.MethodGet, "/questions/0", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var payload questionResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode question: %v", err)
	}
	if payload.QuestionID != 0 || payload.Text != "2+2?" {
		t.Fatalf("unexpected question payload: %+v", payload)
	}

	rec = doRequest(t, router, http.MethodGet, "/questions/5", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing question status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = doRequest(t, router, http.MethodGet, "/questions/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCheckAnswer(t *testing.T) {
	router := newTestRouter(t)
	addTestQuestion(t, router, "2+2?", "4")

	// No caller token: verification is open to anyone.
	rec := doRequest(t, router, http.MethodPost, "/questions/0/check", "", checkAnswerRequest{Answer: "4"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var payload checkAnswerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode check response: %v", err)
	}
	if !payload.Correct || payload.QuestionID != 0 {
		t.Fatalf("unexpected check payload: %+v", payload)
	}

	rec = doRequest(t, router, http.MethodPost, "/questions/0/check", "", checkAnswerRequest{Answer: "five"})
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode check response: %v", err)
	}
	if payload.Correct {
		t.Fatalf("wrong answer reported correct")
	}

	rec = doRequest(t, router, http.MethodPost, "/questions/1/check", "", checkAnswerRequest{Answer: "x"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unallocated id status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRegisterUser(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/register", "user-token", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var payload powerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if payload.Power != string(registry.PowerUser) {
		t.Fatalf("power = %q, want %q", payload.Power, registry.PowerUser)
	}

	// Idempotent on repeat.
	rec = doRequest(t, router, http.MethodPost, "/register", "user-token", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeated register status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Missing token cannot name a caller.
	rec = doRequest(t, router, http.MethodPost, "/register", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank token status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGrantEducator(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/educators", "educator-token", grantEducatorRequest{Identity: "new-educator"})
	if rec.Code != http.StatusOK {
		t.Fatalf("grant status = %d, body %s", rec.Code, rec.Body.String())
	}

	// The promoted identity can author questions.
	rec = doRequest(t, router, http.MethodPost, "/questions", "new-educator", addQuestionRequest{
		Text:   "2+2?",
		Answer: "4",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("promoted educator add status = %d, want %d", rec.Code, http.StatusCreated)
	}

	rec = doRequest(t, router, http.MethodPost, "/educators", "user-token", grantEducatorRequest{Identity: "x"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("grant by non-educator status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestPower(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/power", "educator-token", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var payload powerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode power response: %v", err)
	}
	if payload.Power != string(registry.PowerEducator) {
		t.Fatalf("power = %q, want %q", payload.Power, registry.PowerEducator)
	}

	rec = doRequest(t, router, http.MethodGet, "/power", "nobody", nil)
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode power response: %v", err)
	}
	if payload.Power != string(registry.PowerUnregistered) {
		t.Fatalf("power = %q, want %q", payload.Power, registry.PowerUnregistered)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodDelete, "/questions", "educator-token", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}

	rec = doRequest(t, router, http.MethodGet, "/register", "user-token", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
