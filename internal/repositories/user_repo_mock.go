package repositories

import (
	"fmt"
	"sync"
	"time"

	"bikinibottom/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users  map[uint]models.User
	nextID uint
	mu     sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]models.User),
		nextID: 1,
	}
}

// Create adds a new user, enforcing unique usernames and emails.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("failed to create user %s: %w", user.Username, ErrDuplicate)
		}
	}
	now := time.Now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteCharacter == "" {
		user.FavoriteCharacter = models.DefaultFavoriteCharacter
	}
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns a user by username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username }), nil
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email }), nil
}

// GetByID returns a user by its ID.
func (r *MockUserRepository) GetByID(id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MockUserRepository) find(match func(models.User) bool) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

// UpdateFields applies the non-nil fields of update.
func (r *MockUserRepository) UpdateFields(id uint, update models.UserUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || update.IsEmpty() {
		return 0, nil
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.FavoriteCharacter != nil {
		u.FavoriteCharacter = *update.FavoriteCharacter
	}
	if update.JellyfishCount != nil {
		u.JellyfishCount = *update.JellyfishCount
	}
	if update.KrabbyPattiesEaten != nil {
		u.KrabbyPattiesEaten = *update.KrabbyPattiesEaten
	}
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return 1, nil
}

// IncrementCounter adds one to the named counter unless it is at
// models.MaxCounter.
func (r *MockUserRepository) IncrementCounter(id uint, column string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	var counter *int
	switch column {
	case models.JellyfishCounter:
		counter = &u.JellyfishCount
	case models.PattiesCounter:
		counter = &u.KrabbyPattiesEaten
	default:
		return 0, fmt.Errorf("unknown counter column %q", column)
	}
	if *counter >= models.MaxCounter {
		return 0, nil
	}
	*counter++
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return 1, nil
}

// Count returns the number of users held.
func (r *MockUserRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
