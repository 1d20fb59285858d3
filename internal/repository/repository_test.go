package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Message{},
		&domain.Conversation{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "x",
		Name:     name,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
