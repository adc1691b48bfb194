package httpapi

import (
	"net/http"

	"quiz-registry/internal/registry"
)

func NewRouter(service *registry.Service) http.Handler {
	api := NewAPI(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/questions", api.HandleQuestions)
	mux.HandleFunc("/questions/{question_id}", api.HandleQuestion)
	mux.HandleFunc("/questions/{question_id}/check", api.HandleCheckAnswer)
	mux.HandleFunc("/register", api.HandleRegisterUser)
	mux.HandleFunc("/educators", api.HandleGrantEducator)
	mux.HandleFunc("/power", api.HandlePower)

	return withRequestLogging(mux)
}
