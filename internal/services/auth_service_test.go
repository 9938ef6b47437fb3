package services

import (
	"context"
	"testing"
	"time"

	"github.com/epeers/portfolio-tracker/internal/auth"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	users := newFakeUsers()
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthService(users, auth.NewAccountAuthenticator(users), tokens, auth.NewMemorySessionStore())
}

func TestAuthService_SignupValidation(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	testCases := []struct {
		name string
		req  models.SignupRequest
		msg  string
	}{
		{"missing email", models.SignupRequest{Username: "a", Password: "secret1", ConfirmPassword: "secret1"}, "all fields are required"},
		{"mismatch", models.SignupRequest{Email: "a@b.c", Username: "a", Password: "secret1", ConfirmPassword: "secret2"}, "passwords do not match"},
		{"too short", models.SignupRequest{Email: "a@b.c", Username: "a", Password: "abc", ConfirmPassword: "abc"}, "at least 6"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.req)
			assert.ErrorIs(t, err, ErrInvalidSignup)
			assert.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestAuthService_SignupLoginLogout(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	req := models.SignupRequest{Email: "alice@example.com", Username: "alice", Password: "secret1", ConfirmPassword: "secret1"}

	u, err := svc.Signup(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err = svc.Signup(ctx, req)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Login(ctx, "alice", "wrong!")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	login, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", login.Username)

	sess, err := svc.SessionFromToken(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.UserID)

	require.NoError(t, svc.Logout(ctx, sess.ID))
	_, err = svc.SessionFromToken(ctx, login.Token)
	assert.ErrorIs(t, err, ErrSessionRequired, "a logged-out token must not resolve")
}

func TestAuthService_SignupDisabledWithoutUserStore(t *testing.T) {
	tokens, err := auth.NewTokenIssuer("", time.Hour)
	require.NoError(t, err)
	svc := NewAuthService(nil, auth.NewSharedSecretAuthenticator("pw"), tokens, auth.NewMemorySessionStore())

	_, err = svc.Signup(context.Background(), models.SignupRequest{})
	assert.ErrorIs(t, err, ErrSignupDisabled)

	login, err := svc.Login(context.Background(), "", "pw")
	require.NoError(t, err)
	assert.Equal(t, "shared", login.Username)
}

func TestAuthService_LocalSessionIsStable(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	first, err := svc.LocalSession(ctx)
	require.NoError(t, err)
	second, err := svc.LocalSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "local", second.UserID)
}
