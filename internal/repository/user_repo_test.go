package repository

import (
	"testing"

	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createUser(t, db, "alice")

	exists, err := repo.ExistsByEmail("alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_SearchExcludesRequester(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	alice := createUser(t, db, "alice")
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", alice.ID).Update("profession", "Chef").Error)

	bob := createUser(t, db, "bob")
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", bob.ID).Update("profession", "Chef").Error)

	results, err := repo.Search("Chef", alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, bob.ID, results[0].ID)
}

func TestUserRepository_FindByIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	users, err := repo.FindByIDs([]uint64{alice.ID, bob.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[alice.ID].Name)

	empty, err := repo.FindByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
