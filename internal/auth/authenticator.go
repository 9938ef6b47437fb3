// Package auth verifies credentials, issues session tokens and stores the
// per-login session state.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"github.com/epeers/portfolio-tracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the only error a failed login reports, whatever the cause
var ErrInvalidCredentials = errors.New("incorrect credentials")

// Identity is the opaque user a session belongs to
type Identity struct {
	UserID   string
	Username string
}

// Shared and local modes each have a single fixed identity
var (
	SharedIdentity = Identity{UserID: "shared", Username: "shared"}
	LocalIdentity  = Identity{UserID: "local", Username: "local"}
)

// Authenticator checks a username/password pair
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Identity, error)
}

// dummyHash is compared against when the username is unknown so that both
// failure paths cost one bcrypt comparison
var dummyHash = sync.OnceValue(func() string {
	hash, err := HashPassword("not-a-real-password")
	if err != nil {
		panic(err)
	}
	return hash
})

// AccountAuthenticator checks bcrypt hashes stored in a UserStore
type AccountAuthenticator struct {
	users repository.UserStore
	check func(hash, password string) bool
}

// NewAccountAuthenticator creates a new AccountAuthenticator
func NewAccountAuthenticator(users repository.UserStore) *AccountAuthenticator {
	return &AccountAuthenticator{users: users, check: CheckPassword}
}

// Authenticate implements Authenticator. Unknown users and wrong passwords
// both yield ErrInvalidCredentials.
func (a *AccountAuthenticator) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	u, err := a.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		a.check(dummyHash(), password)
		return Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return Identity{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !a.check(u.PasswordHash, password) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{UserID: u.ID, Username: u.Username}, nil
}

// SharedSecretAuthenticator gates access behind one configured password
type SharedSecretAuthenticator struct {
	secret []byte
}

// NewSharedSecretAuthenticator creates a new SharedSecretAuthenticator
func NewSharedSecretAuthenticator(secret string) *SharedSecretAuthenticator {
	return &SharedSecretAuthenticator{secret: []byte(secret)}
}

// Authenticate implements Authenticator; the username is ignored
func (a *SharedSecretAuthenticator) Authenticate(_ context.Context, _, password string) (Identity, error) {
	if len(a.secret) == 0 || subtle.ConstantTimeCompare(a.secret, []byte(password)) != 1 {
		return Identity{}, ErrInvalidCredentials
	}
	return SharedIdentity, nil
}

// LocalAuthenticator accepts everyone as the single local user
type LocalAuthenticator struct{}

// Authenticate implements Authenticator
func (LocalAuthenticator) Authenticate(context.Context, string, string) (Identity, error) {
	return LocalIdentity, nil
}

// HashPassword bcrypt-hashes a password with the default cost
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
