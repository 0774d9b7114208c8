package repositories

import (
	"errors"

	"bikinibottom/internal/models"
)

// ErrDuplicate is returned by Create when the username or email is already taken.
var ErrDuplicate = errors.New("user already exists")

// UserRepository defines the interface for user data access.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	UpdateFields(id uint, update models.UserUpdate) (int64, error)
	IncrementCounter(id uint, column string) (int64, error)
	Count() (int64, error)
}
