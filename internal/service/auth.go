package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jjiisub/bboard/internal/domain"
	"github.com/jjiisub/bboard/internal/errors"
	"github.com/jjiisub/bboard/internal/logger"
	"github.com/jjiisub/bboard/internal/session"
)

// to mock service in tests
type AuthService interface {
	Signup(ctx context.Context, email domain.Email, fullName string, password domain.Password) (domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (token string, user domain.User, err error)
	Resolve(ctx context.Context, token string) (domain.UserId, error)
	Logout(ctx context.Context, token string) error
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(email domain.Email) (domain.User, error)
}

type Auth struct {
	storage  AuthStorage
	sessions session.Store
	ttl      time.Duration
}

var _ AuthService = (*Auth)(nil)

// bcrypt digest of an unused password, compared against when the email
// is unknown so both login failure paths cost one hash verification.
var dummyPassHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("bboard-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

func NewAuth(storage AuthStorage, sessions session.Store, ttl time.Duration) *Auth {
	return &Auth{storage: storage, sessions: sessions, ttl: ttl}
}

// Signup creates a new account. The email pre-check only produces a
// friendlier message: the storage unique constraint is the actual
// enforcement under concurrent signups.
func (a *Auth) Signup(ctx context.Context, email domain.Email, fullName string, password domain.Password) (domain.User, error) {
	email = strings.ToLower(email)

	if _, err := a.storage.User(email); err == nil {
		return domain.User{}, errors.ValueConflict("An account with this email already exists")
	} else if !errors.IsNotFound(err) {
		return domain.User{}, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	user := domain.User{Email: email, FullName: fullName, PassHash: string(passHash)}
	id, err := a.storage.SaveUser(user)
	if err != nil {
		return domain.User{}, err
	}
	user.Id = id
	return user, nil
}

// Login checks credentials and issues a session token. Unknown email
// and wrong password collapse into the same error so callers cannot
// probe which accounts exist.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, domain.User, error) {
	email := strings.ToLower(creds.Email)

	user, err := a.storage.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			// burn a verification anyway to keep latency comparable
			bcrypt.CompareHashAndPassword(dummyPassHash, []byte(creds.Password))
			return "", domain.User{}, errors.Unauthenticated("Invalid email or password")
		}
		return "", domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Warn("password verification failed", "user_id", user.Id)
		return "", domain.User{}, errors.Unauthenticated("Invalid email or password")
	}

	token, err := a.issue(ctx, user.Id)
	if err != nil {
		logger.Log.Error("failed to issue session token", "user_id", user.Id, "error", err)
		return "", domain.User{}, err
	}
	return token, user, nil
}

// issue generates an opaque 256-bit token and stores it with the
// configured TTL. Validity is determined entirely by store presence.
func (a *Auth) issue(ctx context.Context, uid domain.UserId) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := a.sessions.Put(ctx, token, uid, a.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve is the sole authentication gate for protected operations.
func (a *Auth) Resolve(ctx context.Context, token string) (domain.UserId, error) {
	if token == "" {
		return 0, errors.Unauthenticated("Please sign in")
	}
	uid, ok, err := a.sessions.Get(ctx, token)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Unauthenticated("Please sign in")
	}
	return uid, nil
}

// Logout revokes the session regardless of prior state.
func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.sessions.Delete(ctx, token)
}
