package handlers

import (
	"encoding/json"
	"net/http"

	"wishfund/extractor"
	"wishfund/repository"
	"wishfund/services"
)

type Handlers struct {
	userRepo    *repository.UserRepository
	productRepo *repository.ProductRepository
	contribRepo *repository.ContributionRepository
	auth        *services.AuthService
	extractor   *extractor.ProductExtractor
}

func NewHandlers(
	userRepo *repository.UserRepository,
	productRepo *repository.ProductRepository,
	contribRepo *repository.ContributionRepository,
	auth *services.AuthService,
	productExtractor *extractor.ProductExtractor,
) *Handlers {
	return &Handlers{
		userRepo:    userRepo,
		productRepo: productRepo,
		contribRepo: contribRepo,
		auth:        auth,
		extractor:   productExtractor,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
