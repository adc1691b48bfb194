package httpapi

type addQuestionRequest struct {
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

type addQuestionResponse struct {
	QuestionID uint64 `json:"question_id"`
}

type questionResponse struct {
	QuestionID uint64 `json:"question_id"`
	Text       string `json:"text"`
}

type questionsResponse struct {
	QuestionCount int                `json:"question_count"`
	Questions     []questionResponse `json:"questions"`
}

type checkAnswerRequest struct {
	Answer string `json:"answer"`
}

type checkAnswerResponse struct {
	QuestionID uint64 `json:"question_id"`
	Correct    bool   `json:"correct"`
}

type grantEducatorRequest struct {
	Identity string `json:"identity"`
}

type powerResponse struct {
	Identity string `json:"identity"`
	Power    string `json:"power"`
}

type errorResponse struct {
	Error string `json:"error"`
}
