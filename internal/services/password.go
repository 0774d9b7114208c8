package services

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the fixed work factor for stored passwords.
const BcryptCost = 10

// MaxPasswordBytes is bcrypt's input limit, counted in bytes rather than
// characters.
const MaxPasswordBytes = 72

// PasswordHasher turns plaintext passwords into opaque digests and checks them.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. The salt is random per
// call and embedded in the digest.
type BcryptHasher struct{}

// NewBcryptHasher creates a new BcryptHasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash returns the bcrypt digest of plaintext.
func (BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest.
func (BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
