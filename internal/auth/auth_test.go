package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	f.users[u.Username] = u
	return nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func TestAccountAuthenticator(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	users := &fakeUsers{users: map[string]*models.User{
		"alice": {ID: "u-1", Username: "alice", PasswordHash: hash},
	}}
	a := NewAccountAuthenticator(users)
	ctx := context.Background()

	id, err := a.Authenticate(ctx, "alice", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u-1", Username: "alice"}, id)

	_, wrongPassword := a.Authenticate(ctx, "alice", "nope")
	_, unknownUser := a.Authenticate(ctx, "bob", "s3cret!")
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error(), "failures must be indistinguishable")

	users.err = errors.New("db down")
	_, err = a.Authenticate(ctx, "alice", "s3cret!")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountAuthenticator_UnknownUserStillComparesHash(t *testing.T) {
	a := NewAccountAuthenticator(&fakeUsers{users: map[string]*models.User{}})
	var compared []string
	a.check = func(hash, password string) bool {
		compared = append(compared, hash)
		return CheckPassword(hash, password)
	}

	_, err := a.Authenticate(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, compared, 1)
	assert.Equal(t, dummyHash(), compared[0])
	assert.False(t, CheckPassword(compared[0], "whatever"))
}

func TestSharedSecretAuthenticator(t *testing.T) {
	a := NewSharedSecretAuthenticator("family-pass")
	id, err := a.Authenticate(context.Background(), "", "family-pass")
	require.NoError(t, err)
	assert.Equal(t, SharedIdentity, id)

	_, err = a.Authenticate(context.Background(), "", "family")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = NewSharedSecretAuthenticator("").Authenticate(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "an unset secret must not accept the empty password")
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := issuer.Issue("sess-1", "u-1")
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)

	forged, _, err := other.Issue("sess-1", "u-1")
	require.NoError(t, err)
	_, err = issuer.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	past := time.Now().Add(-2 * time.Hour)
	issuer.now = func() time.Time { return past }
	expired, _, err := issuer.Issue("sess-1", "u-1")
	require.NoError(t, err)
	issuer.now = time.Now
	_, err = issuer.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	s := &models.Session{
		ID:        "sess-1",
		UserID:    "u-1",
		Drafts:    &models.HoldingsTexts{ETF: "A,1"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	got.Drafts.ETF = "mutated"

	again, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "A,1", again.Drafts.ETF, "stored session must not share draft memory with callers")

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	require.NoError(t, store.Save(ctx, &models.Session{ID: "s", ExpiresAt: time.Now().Add(time.Minute)}))

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err := store.Get(ctx, "s")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
