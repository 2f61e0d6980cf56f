// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelamos/bookclub-api/internal/core"
	"github.com/angelamos/bookclub-api/internal/session"
	"github.com/angelamos/bookclub-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
)

type Service struct {
	users    user.Repository
	sessions session.Store
}

func NewService(users user.Repository, sessions session.Store) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
	}
}

// Register creates the account and logs it in, returning the user and the
// session token. The email is matched exactly as stored, no normalization.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*user.User, string, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", ErrEmailExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  passwordHash,
		BookmarkCount: 0,
	}

	if err := s.users.Create(ctx, u); err != nil {
		// Unique constraint catches the race between check and insert.
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, "", ErrEmailExists
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	return u, token, nil
}

// Login verifies credentials and establishes a session. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*user.User, string, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention, always verify
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &u.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	return u, token, nil
}

// Logout destroys the session if one exists. Calling it without a session
// is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}

	return nil
}

func (s *Service) CurrentUser(
	ctx context.Context,
	userID int64,
) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}
