package repository

import (
	"github.com/chattermate/chattermate-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository user profile data access
type UserRepository interface {
	Create(user *domain.User) error
	FindByID(id uint64) (*domain.User, error)
	FindByIDs(ids []uint64) (map[uint64]*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *domain.User) error
	Search(keyword string, excludeID uint64, limit int) ([]*domain.User, error)
	FindAll(excludeID uint64, page, limit int) ([]*domain.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ids []uint64) (map[uint64]*domain.User, error) {
	result := make(map[uint64]*domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []*domain.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(user *domain.User) error {
	return r.db.Save(user).Error
}

// Search finds users whose name or profession matches the keyword,
// excluding the requesting user.
func (r *userRepository) Search(keyword string, excludeID uint64, limit int) ([]*domain.User, error) {
	var users []*domain.User
	pattern := "%" + keyword + "%"
	err := r.db.
		Where("id <> ?", excludeID).
		Where("name LIKE ? OR profession LIKE ? OR interest LIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindAll(excludeID uint64, page, limit int) ([]*domain.User, int64, error) {
	var users []*domain.User
	var total int64

	query := r.db.Model(&domain.User{}).Where("id <> ?", excludeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
