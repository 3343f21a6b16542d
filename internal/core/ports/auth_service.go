package ports

import (
	"context"
	"time"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Role     string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
	User      *domain.User
}

// Authenticator resolves a session token into its live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

type AuthService interface {
	Authenticator
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}
