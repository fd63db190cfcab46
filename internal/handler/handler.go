package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jjiisub/bboard/internal/config"
	"github.com/jjiisub/bboard/internal/logger"
	"github.com/jjiisub/bboard/internal/service"
	"github.com/jjiisub/bboard/internal/service/utils"
)

type Handler struct {
	auth     service.AuthService
	board    service.BoardService
	post     service.PostService
	renderer *utils.TextProcessor
	health   Pinger
	cfg      *config.Config
}

func New(auth service.AuthService, board service.BoardService, post service.PostService, renderer *utils.TextProcessor, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, board, post, renderer, health, cfg}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
