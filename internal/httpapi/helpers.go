package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"quiz-registry/internal/registry"
)

// CallerTokenHeader carries the opaque identity token the host attaches
// to each invocation. The token is trusted as supplied; no authentication
// scheme exists behind it.
const CallerTokenHeader = "X-Caller-Token"

func callerIdentity(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(CallerTokenHeader))
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "caller is not authorized"})
	case errors.Is(err, registry.ErrQuestionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "question not found"})
	case errors.Is(err, registry.ErrInvalidIdentity):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "caller token is required"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func parseQuestionID(r *http.Request) (uint64, error) {
	value := strings.TrimSpace(r.PathValue("question_id"))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("question_id must be a non-negative integer")
	}
	return parsed, nil
}

func toQuestionResponses(questions []registry.PublicQuestion) []questionResponse {
	response := make([]questionResponse, 0, len(questions))
	for _, question := range questions {
		response = append(response, questionResponse{
			QuestionID: question.QuestionID,
			Text:       question.Text,
		})
	}
	return response
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethods string) {
	w.Header().Set("Allow", allowedMethods)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
