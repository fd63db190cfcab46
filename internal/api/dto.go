package api

import "github.com/jjiisub/bboard/internal/domain"

// Request DTOs

type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FullName  string `json:"fullname" validate:"required,notblank"`
	Password1 string `json:"password1" validate:"required,notblank"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateBoardRequest struct {
	Name   string `json:"name" validate:"required,notblank"`
	Public *bool  `json:"public" validate:"required"`
}

type UpdateBoardRequest struct {
	Name   string `json:"name" validate:"required,notblank"`
	Public *bool  `json:"public" validate:"required"`
}

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,notblank"`
	Content string `json:"content" validate:"required,notblank"`
}

type UpdatePostRequest struct {
	Title   string `json:"title" validate:"required,notblank"`
	Content string `json:"content" validate:"required,notblank"`
}

// Response DTOs

type SignupResponse struct {
	Id       domain.UserId `json:"id"`
	Email    string        `json:"email"`
	FullName string        `json:"fullname"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserEmail   string `json:"user_email"`
}

type BoardResponse struct {
	domain.Board
}

type BoardListResponse struct {
	domain.BoardPage
}

type PostResponse struct {
	domain.Post
	// Sanitized HTML rendering of Content; Content itself stays the
	// raw markdown source.
	Html string `json:"html,omitempty"`
}

type PostListResponse struct {
	domain.PostPage
}
