package handler_test

import (
	"net/http"
	"testing"

	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", payload{
		"email":    "dana@example.com",
		"password": "secret-password",
		"name":     "dana",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.User
	decodeData(t, w, &created)
	assert.Equal(t, "dana", created.Name)
	assert.NotZero(t, created.ID)

	// Stored password hash never leaks through the API.
	assert.NotContains(t, w.Body.String(), "secret-password")

	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", payload{
		"email":    "dana@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		AccessToken string       `json:"access_token"`
		User        *domain.User `json:"user"`
	}
	decodeData(t, w, &login)
	require.NotEmpty(t, login.AccessToken)
	require.NotNil(t, login.User)
	assert.Equal(t, created.ID, login.User.ID)

	// The issued token authenticates /auth/me.
	w = env.request(t, http.MethodGet, "/api/v1/auth/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me domain.User
	decodeData(t, w, &me)
	assert.Equal(t, created.ID, me.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})

	body := payload{
		"email":    "dana@example.com",
		"password": "secret-password",
		"name":     "dana",
	}
	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})

	tests := []struct {
		name string
		body payload
	}{
		{"bad email", payload{"email": "not-an-email", "password": "secret-password", "name": "x"}},
		{"short password", payload{"email": "a@example.com", "password": "short", "name": "x"}},
		{"missing name", payload{"email": "a@example.com", "password": "secret-password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", payload{
		"email":    "dana@example.com",
		"password": "secret-password",
		"name":     "dana",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", payload{
		"email":    "dana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", payload{
		"email":    "nobody@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
