package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/chattermate/chattermate-backend/internal/handler"
	"github.com/chattermate/chattermate-backend/internal/repository"
	"github.com/chattermate/chattermate-backend/internal/routes"
	"github.com/chattermate/chattermate-backend/internal/service"
	"github.com/chattermate/chattermate-backend/pkg/jwt"
	"github.com/chattermate/chattermate-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitStructured("test")
}

var testDBCounter atomic.Int64

// failingGenerator always errors, standing in for a broken upstream.
type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string) (string, error) {
	return "", errors.New("generation unavailable")
}

// cannedGenerator returns a fixed reply.
type cannedGenerator struct{ reply string }

func (g cannedGenerator) Generate(context.Context, string) (string, error) {
	return g.reply, nil
}

type testEnv struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtManager *jwt.Manager
	scheduler  *service.ReplyScheduler
}

// newTestEnv wires the full stack against an in-memory database and the
// given generator stub.
func newTestEnv(t *testing.T, gen service.Generator) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Message{}, &domain.Conversation{}))

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	convRepo := repository.NewConversationRepository(db)

	scheduler := service.NewReplyScheduler(userRepo, messageRepo, gen, service.SchedulerOptions{
		TypingDelay:       10 * time.Millisecond,
		GenerationTimeout: time.Second,
		MaxConcurrent:     4,
	})
	t.Cleanup(scheduler.Shutdown)

	jwtManager := jwt.NewManager("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, nil)
	messageService := service.NewMessageService(messageRepo, convRepo, userRepo, nil, scheduler)

	router := gin.New()
	routes.Setup(router,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewMessageHandler(messageService),
		jwtManager,
	)

	return &testEnv{router: router, db: db, jwtManager: jwtManager, scheduler: scheduler}
}

func (e *testEnv) createUser(t *testing.T, name string, mutate func(*domain.User)) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "x",
		Name:     name,
	}
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) token(t *testing.T, user *domain.User) string {
	t.Helper()
	token, err := e.jwtManager.GenerateAccessToken(user.ID, user.Name)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func messageCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.Message{}).Count(&count).Error)
	return count
}
