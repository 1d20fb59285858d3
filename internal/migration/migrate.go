package migration

import (
	"github.com/chattermate/chattermate-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables. Creates tables and indexes if
// missing, otherwise a no-op.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Message{},
		&domain.Conversation{},
	)
}
