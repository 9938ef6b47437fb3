package handlers

import (
	"net/http"
	"testing"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(t, testOptions{})
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSignup_Validation(t *testing.T) {
	r := newTestRouter(t, testOptions{})

	tests := []struct {
		name   string
		req    models.SignupRequest
		status int
	}{
		{"missing email", models.SignupRequest{Username: "a", Password: "secret1", ConfirmPassword: "secret1"}, http.StatusBadRequest},
		{"password mismatch", models.SignupRequest{Email: "a@b.c", Username: "a", Password: "secret1", ConfirmPassword: "secret2"}, http.StatusBadRequest},
		{"password too short", models.SignupRequest{Email: "a@b.c", Username: "a", Password: "abc", ConfirmPassword: "abc"}, http.StatusBadRequest},
		{"valid", models.SignupRequest{Email: "a@b.c", Username: "a", Password: "secret1", ConfirmPassword: "secret1"}, http.StatusCreated},
		{"duplicate username", models.SignupRequest{Email: "x@b.c", Username: "a", Password: "secret1", ConfirmPassword: "secret1"}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/auth/signup", "", tt.req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestSignup_DisabledInLocalMode(t *testing.T) {
	r := newTestRouter(t, testOptions{local: true})
	w := doJSON(t, r, http.MethodPost, "/auth/signup", "", models.SignupRequest{
		Email: "a@b.c", Username: "a", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_GenericFailure(t *testing.T) {
	r := newTestRouter(t, testOptions{})
	signupAndLogin(t, r, "alice")

	wrongPassword := doJSON(t, r, http.MethodPost, "/auth/login", "", models.LoginRequest{Username: "alice", Password: "nope"})
	unknownUser := doJSON(t, r, http.MethodPost, "/auth/login", "", models.LoginRequest{Username: "bob", Password: "secret1"})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "incorrect credentials", decode[models.ErrorResponse](t, wrongPassword).Message)
}

func TestLogout_DiscardsSession(t *testing.T) {
	r := newTestRouter(t, testOptions{})
	token := signupAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/holdings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/holdings", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t, testOptions{})
	for _, path := range []string{"/holdings", "/dashboard", "/dashboard/charts/allocation"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w := doJSON(t, r, http.MethodGet, "/holdings", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
