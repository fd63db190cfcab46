package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jjiisub/bboard/internal/api"
	"github.com/jjiisub/bboard/internal/domain"
	mw "github.com/jjiisub/bboard/internal/middleware"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	var body api.CreateBoardRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Create(domain.BoardCreationData{Name: body.Name, Public: *body.Public, Owner: uid})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.BoardResponse{Board: board})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "board"), "board id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Get(id, uid)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.BoardResponse{Board: board})
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "board"), "board id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdateBoardRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.board.Update(domain.BoardUpdateData{Id: id, Name: body.Name, Public: *body.Public}, uid); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "board"), "board id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.board.Delete(id, uid); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	page, pageSize, err := parsePagination(r)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	boards, err := h.board.List(uid, page, pageSize)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.BoardListResponse{BoardPage: boards})
}
