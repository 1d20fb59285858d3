package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/chattermate/chattermate-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.InitStructured("test")
}

var testDBCounter atomic.Int64

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Message{},
		&domain.Conversation{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, mutate func(*domain.User)) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "x",
		Name:     name,
	}
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// stubGenerator is a scripted Generator for pipeline tests.
type stubGenerator struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *stubGenerator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}
