package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jjiisub/bboard/internal/api"
	"github.com/jjiisub/bboard/internal/domain"
	"github.com/jjiisub/bboard/internal/logger"
	mw "github.com/jjiisub/bboard/internal/middleware"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	boardId, err := parseIntParam(chi.URLParam(r, "board"), "board id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	var body api.CreatePostRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Create(domain.PostCreationData{Board: boardId, Title: body.Title, Content: body.Content, Owner: uid})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.PostResponse{Post: post})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "post"), "post id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Get(id, uid)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	html, err := h.renderer.Render(post.Content)
	if err != nil {
		// rendering is best-effort; the raw content is still served
		logger.Log.Error("failed to render post content", "post_id", post.Id, "error", err)
		html = ""
	}

	writeJSON(w, http.StatusOK, api.PostResponse{Post: post, Html: html})
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "post"), "post id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdatePostRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.Update(domain.PostUpdateData{Id: id, Title: body.Title, Content: body.Content}, uid); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "post"), "post id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.Delete(id, uid); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		http.Error(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	boardId, err := parseIntParam(chi.URLParam(r, "board"), "board id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	page, pageSize, err := parsePagination(r)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	posts, err := h.post.List(boardId, uid, page, pageSize)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.PostListResponse{PostPage: posts})
}
