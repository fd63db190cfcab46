package setup

import (
	"context"

	"github.com/jjiisub/bboard/internal/config"
	"github.com/jjiisub/bboard/internal/handler"
	"github.com/jjiisub/bboard/internal/middleware"
	"github.com/jjiisub/bboard/internal/service"
	"github.com/jjiisub/bboard/internal/service/utils"
	"github.com/jjiisub/bboard/internal/session"
	"github.com/jjiisub/bboard/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Sessions       *session.Redis
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewRedis(ctx, cfg)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	auth := service.NewAuth(storage, sessions, cfg.SessionTTL())
	board := service.NewBoard(storage, cfg.Public.PageSize)
	post := service.NewPost(storage, storage, cfg.Public.PageSize)

	h := handler.New(auth, board, post, utils.New(), storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Sessions:       sessions,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(auth),
	}, nil
}

// Cleanup releases held connections.
func (d *Dependencies) Cleanup() {
	if d.Sessions != nil {
		d.Sessions.Cleanup()
	}
	if d.Storage != nil {
		d.Storage.Cleanup()
	}
}
