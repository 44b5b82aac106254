// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"devmesh/internal/cache"
	"devmesh/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	ListCandidates(ctx context.Context, excludedIDs []uint, filters models.FeedFilters) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("An account with this email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update persists the editable profile columns only. Email and password are
// never written here: cached reads come back with the password hash redacted,
// so a full-row save would overwrite the stored hash with an empty string.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Model(user).
		Select("first_name", "last_name", "age", "gender", "about", "photo_url", "skills").
		Updates(user).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// ListCandidates returns users outside excludedIDs that match the filters.
// Predicates are composed explicitly; ranking happens in the service layer,
// so rows come back in stable recency order.
func (r *userRepository) ListCandidates(ctx context.Context, excludedIDs []uint, filters models.FeedFilters) ([]models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})

	if len(excludedIDs) > 0 {
		q = q.Where("id NOT IN ?", excludedIDs)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(about) LIKE ? OR LOWER(skills::text) LIKE ?",
			like, like, like, like,
		)
	}
	if filters.Gender != "" {
		q = q.Where("gender = ?", filters.Gender)
	}
	if filters.MinAge > 0 {
		q = q.Where("age >= ?", filters.MinAge)
	}
	if filters.MaxAge > 0 {
		q = q.Where("age <= ?", filters.MaxAge)
	}

	var users []models.User
	if err := q.Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
