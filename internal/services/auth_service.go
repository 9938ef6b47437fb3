package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/portfolio-tracker/internal/auth"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/repository"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const minPasswordLength = 6

var (
	ErrSignupDisabled  = errors.New("signup is not available in this mode")
	ErrInvalidSignup   = errors.New("invalid signup")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrSessionRequired = errors.New("authentication required")
)

// AuthService handles signup, login, logout and session lookup
type AuthService struct {
	users         repository.UserStore
	authenticator auth.Authenticator
	tokens        *auth.TokenIssuer
	sessions      auth.SessionStore
	now           func() time.Time
}

// NewAuthService creates a new AuthService. users may be nil when accounts are disabled.
func NewAuthService(users repository.UserStore, authenticator auth.Authenticator, tokens *auth.TokenIssuer, sessions auth.SessionStore) *AuthService {
	return &AuthService{
		users:         users,
		authenticator: authenticator,
		tokens:        tokens,
		sessions:      sessions,
		now:           time.Now,
	}
}

// Signup validates the form and creates an account
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if s.users == nil {
		return nil, ErrSignupDisabled
	}

	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	switch {
	case email == "" || username == "" || req.Password == "" || req.ConfirmPassword == "":
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidSignup)
	case req.Password != req.ConfirmPassword:
		return nil, fmt.Errorf("%w: passwords do not match", ErrInvalidSignup)
	case len(req.Password) < minPasswordLength:
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidSignup, minPasswordLength)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	log.Infof("created account %s", username)
	return u, nil
}

// Login authenticates and opens a new session
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	identity, err := s.authenticator.Authenticate(ctx, strings.TrimSpace(username), password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Errorf("login for %q failed: %v", username, err)
		}
		return nil, err
	}

	sess, token, err := s.openSession(ctx, identity)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, Username: sess.Username, ExpiresAt: sess.ExpiresAt}, nil
}

// Logout discards a session and its drafts
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// SessionFromToken verifies a bearer token and loads its session
func (s *AuthService) SessionFromToken(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrSessionRequired
	}
	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, auth.ErrSessionNotFound) {
		return nil, ErrSessionRequired
	}
	if err != nil {
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, ErrSessionRequired
	}
	return sess, nil
}

// LocalSession returns the single session used when authentication is off
func (s *AuthService) LocalSession(ctx context.Context) (*models.Session, error) {
	const localSessionID = "local"
	sess, err := s.sessions.Get(ctx, localSessionID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, auth.ErrSessionNotFound) {
		return nil, err
	}
	sess = &models.Session{
		ID:        localSessionID,
		UserID:    auth.LocalIdentity.UserID,
		Username:  auth.LocalIdentity.Username,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *AuthService) openSession(ctx context.Context, identity auth.Identity) (*models.Session, string, error) {
	now := s.now().UTC()
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		Username:  identity.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.TTL()),
	}
	token, expiresAt, err := s.tokens.Issue(sess.ID, sess.UserID)
	if err != nil {
		return nil, "", err
	}
	sess.ExpiresAt = expiresAt.UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}
	return sess, token, nil
}
