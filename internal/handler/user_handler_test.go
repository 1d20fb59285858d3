package handler_test

import (
	"net/http"
	"testing"

	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMe(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})
	user := env.createUser(t, "erin", nil)

	w := env.request(t, http.MethodPut, "/api/v1/users/me", env.token(t, user), payload{
		"profession": "Chef",
		"mood":       "happy",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.User
	decodeData(t, w, &updated)
	assert.Equal(t, "Chef", updated.Profession)
	assert.Equal(t, "happy", updated.Mood)
	assert.Equal(t, "erin", updated.Name, "omitted fields stay untouched")

	var stored domain.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	assert.Equal(t, "Chef", stored.Profession)
}

func TestUpdateMeUnauthorized(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})

	w := env.request(t, http.MethodPut, "/api/v1/users/me", "", payload{"mood": "happy"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})
	erin := env.createUser(t, "erin", nil)
	env.createUser(t, "frank", func(u *domain.User) { u.Profession = "Gardener" })
	env.createUser(t, "grace", nil)

	w := env.request(t, http.MethodGet, "/api/v1/users/search?q=garden", env.token(t, erin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []*domain.UserSummary
	decodeData(t, w, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "frank", results[0].Name)
}

func TestSearchRequiresQuery(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})
	erin := env.createUser(t, "erin", nil)

	w := env.request(t, http.MethodGet, "/api/v1/users/search", env.token(t, erin), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExploreExcludesRequester(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})
	erin := env.createUser(t, "erin", nil)
	env.createUser(t, "frank", nil)
	env.createUser(t, "grace", nil)

	w := env.request(t, http.MethodGet, "/api/v1/users/explore", env.token(t, erin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []*domain.UserSummary
	decodeData(t, w, &results)
	require.Len(t, results, 2)
	for _, u := range results {
		assert.NotEqual(t, erin.ID, u.ID)
	}
}
