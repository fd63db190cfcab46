package handler

import (
	"net/http"

	"github.com/jjiisub/bboard/internal/api"
	"github.com/jjiisub/bboard/internal/domain"
	mw "github.com/jjiisub/bboard/internal/middleware"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body api.SignupRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	user, err := h.auth.Signup(r.Context(), body.Email, body.FullName, body.Password1)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.SignupResponse{Id: user.Id, Email: user.Email, FullName: user.FullName})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.LoginResponse{AccessToken: token, TokenType: "bearer", UserEmail: user.Email})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := mw.GetTokenFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("You logged out"))
}
