package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bikinibottom/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. The unique indexes on username and email decide
// conflicts, so two racing registrations cannot both succeed.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.FavoriteCharacter == "" {
		user.FavoriteCharacter = models.DefaultFavoriteCharacter
	}
	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create user %s: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.first("username = ?", username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.first("email = ?", email)
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	return r.first("id = ?", id)
}

func (r *GORMUserRepository) first(query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user where %s %v: %w", query, arg, err)
	}
	return &user, nil
}

// UpdateFields writes only the supplied fields and stamps updated_at.
// An unknown id affects zero rows and is not an error.
func (r *GORMUserRepository) UpdateFields(id uint, update models.UserUpdate) (int64, error) {
	cols := update.Columns()
	if len(cols) == 0 {
		return 0, nil
	}
	cols["updated_at"] = time.Now()

	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update user %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// IncrementCounter adds one to a counter column in a single statement.
// A counter already at models.MaxCounter is left alone and counts as zero
// rows affected.
func (r *GORMUserRepository) IncrementCounter(id uint, column string) (int64, error) {
	if column != models.JellyfishCounter && column != models.PattiesCounter {
		return 0, fmt.Errorf("unknown counter column %q", column)
	}
	res := r.db.Model(&models.User{}).Where("id = ? AND "+column+" < ?", id, models.MaxCounter).Updates(map[string]interface{}{
		column:       gorm.Expr(column+" + ?", 1),
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to increment %s for user %d: %w", column, id, res.Error)
	}
	return res.RowsAffected, nil
}

// Count returns the number of stored users.
func (r *GORMUserRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// isUniqueViolation recognises uniqueness errors with or without
// gorm's TranslateError enabled.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
