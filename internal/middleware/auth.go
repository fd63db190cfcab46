package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jjiisub/bboard/internal/domain"
	"github.com/jjiisub/bboard/internal/errors"
)

// TokenResolver is the part of the auth service the middleware needs.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (domain.UserId, error)
}

// Keys to store the resolved identity in the request context
type key int

const (
	userIdKey key = iota
	tokenKey
)

type Auth struct {
	resolver TokenResolver
}

func NewAuth(resolver TokenResolver) *Auth {
	return &Auth{resolver: resolver}
}

// NeedAuth resolves the bearer token against the session store and
// stores the user id in the request context. The token itself is kept
// too so logout can revoke it.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			uid, err := a.resolver.Resolve(r.Context(), token)
			if err != nil {
				if e, ok := err.(*errors.ErrorWithStatusCode); ok {
					http.Error(w, e.Message, e.StatusCode)
				} else {
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIdKey, uid)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the opaque token from the Authorization header.
// An absent or malformed header yields "", which Resolve rejects.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// GetUserIdFromContext returns the authenticated user id, or false if
// the request did not pass the auth middleware.
func GetUserIdFromContext(r *http.Request) (domain.UserId, bool) {
	uid, ok := r.Context().Value(userIdKey).(domain.UserId)
	return uid, ok
}

// GetTokenFromContext returns the bearer token the request carried.
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenKey).(string)
	return token, ok
}
