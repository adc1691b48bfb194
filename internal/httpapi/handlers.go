package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"quiz-registry/internal/registry"
)

// HandleQuestions serves the question collection: GET lists the public
// (id, text) projection, POST appends a question for an Educator caller.
func (a *API) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listQuestions(w, r)
	case http.MethodPost:
		a.addQuestion(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet+", "+http.MethodPost)
	}
}

func (a *API) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := a.service.ListQuestions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questionsResponse{
		QuestionCount: len(questions),
		Questions:     toQuestionResponses(questions),
	})
}

func (a *API) addQuestion(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request addQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(request.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}

	questionID, err := a.service.AddQuestion(r.Context(), callerIdentity(r), request.Text, request.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addQuestionResponse{QuestionID: questionID})
}

func (a *API) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	questionID, err := parseQuestionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	question, err := a.service.GetQuestion(r.Context(), questionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questionResponse{
		QuestionID: question.QuestionID,
		Text:       question.Text,
	})
}

// HandleCheckAnswer is the free verification entry point: no caller token
// is consulted and no state changes.
func (a *API) HandleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	questionID, err := parseQuestionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	defer r.Body.Close()

	var request checkAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	correct, err := a.service.CheckAnswer(r.Context(), questionID, request.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkAnswerResponse{
		QuestionID: questionID,
		Correct:    correct,
	})
}

func (a *API) HandleRegisterUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	identity := callerIdentity(r)
	if err := a.service.RegisterUser(r.Context(), identity); err != nil {
		writeServiceError(w, err)
		return
	}

	power, err := a.service.PowerOf(r.Context(), identity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, powerResponse{
		Identity: identity,
		Power:    string(power),
	})
}

func (a *API) HandleGrantEducator(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	defer r.Body.Close()

	var request grantEducatorRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if err := a.service.GrantEducator(r.Context(), callerIdentity(r), request.Identity); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, powerResponse{
		Identity: strings.TrimSpace(request.Identity),
		Power:    string(registry.PowerEducator),
	})
}

func (a *API) HandlePower(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	identity := callerIdentity(r)
	power, err := a.service.PowerOf(r.Context(), identity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, powerResponse{
		Identity: identity,
		Power:    string(power),
	})
}
