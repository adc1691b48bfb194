package httpapi

import "quiz-registry/internal/registry"

type API struct {
	service *registry.Service
}

func NewAPI(service *registry.Service) *API {
	return &API{service: service}
}
