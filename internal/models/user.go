package models

import (
	"math"
	"time"
)

// DefaultFavoriteCharacter is used when a user does not pick one at registration.
const DefaultFavoriteCharacter = "SpongeBob"

// Counter columns that can be incremented by the novelty actions.
const (
	JellyfishCounter = "jellyfish_count"
	PattiesCounter   = "krabby_patties_eaten"
)

// MaxCounter is the largest value a counter may hold. It fits every
// supported driver's integer column with room to spare.
const MaxCounter = math.MaxInt32

// User represents a resident of Bikini Bottom as stored in the users table.
type User struct {
	ID                 uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username           string    `json:"username" gorm:"uniqueIndex;not null;type:varchar(50)"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null;type:varchar(255)"`
	Password           string    `json:"-" gorm:"not null;type:varchar(255)"` // bcrypt digest only
	FullName           string    `json:"full_name" gorm:"type:varchar(100)"`
	FavoriteCharacter  string    `json:"favorite_character" gorm:"type:varchar(100);default:SpongeBob"`
	JellyfishCount     int       `json:"jellyfish_count" gorm:"not null;default:0;check:jellyfish_count >= 0"`
	KrabbyPattiesEaten int       `json:"krabby_patties_eaten" gorm:"not null;default:0;check:krabby_patties_eaten >= 0"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PublicUser is the redacted view of a User. It is what sessions hold and
// what pages and JSON responses see.
type PublicUser struct {
	ID                 uint      `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	FavoriteCharacter  string    `json:"favorite_character"`
	JellyfishCount     int       `json:"jellyfish_count"`
	KrabbyPattiesEaten int       `json:"krabby_patties_eaten"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Public strips the password digest.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		FullName:           u.FullName,
		FavoriteCharacter:  u.FavoriteCharacter,
		JellyfishCount:     u.JellyfishCount,
		KrabbyPattiesEaten: u.KrabbyPattiesEaten,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// NewUser carries the registration input. Password is plaintext here and is
// hashed before anything is persisted.
type NewUser struct {
	Username          string
	Email             string
	Password          string
	FullName          string
	FavoriteCharacter string
}

// UserUpdate is a partial update: nil fields keep their stored value.
type UserUpdate struct {
	FullName           *string
	FavoriteCharacter  *string
	JellyfishCount     *int
	KrabbyPattiesEaten *int
}

// IsEmpty reports whether the update would change nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.FullName == nil && u.FavoriteCharacter == nil &&
		u.JellyfishCount == nil && u.KrabbyPattiesEaten == nil
}

// Columns maps the supplied fields to their column names.
func (u UserUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if u.FullName != nil {
		cols["full_name"] = *u.FullName
	}
	if u.FavoriteCharacter != nil {
		cols["favorite_character"] = *u.FavoriteCharacter
	}
	if u.JellyfishCount != nil {
		cols[JellyfishCounter] = *u.JellyfishCount
	}
	if u.KrabbyPattiesEaten != nil {
		cols[PattiesCounter] = *u.KrabbyPattiesEaten
	}
	return cols
}
