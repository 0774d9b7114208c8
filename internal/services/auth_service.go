package services

import (
	"errors"
	"fmt"
	"log"

	"bikinibottom/internal/models"
	"bikinibottom/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// User event names published on successful auth actions.
const (
	EventUserRegistered = "user.registered"
	EventUserLoggedIn   = "user.logged_in"
	EventUserLoggedOut  = "user.logged_out"
)

// EventPublisher receives user lifecycle events. It is optional.
type EventPublisher interface {
	PublishUserEvent(event string, payload map[string]interface{}) error
}

// RegisterInput is the registration form. Length limits follow the column
// sizes in models.User; the password's upper bound is checked in bytes by
// Register.
type RegisterInput struct {
	Username          string `form:"username" json:"username" validate:"required,max=50"`
	Email             string `form:"email" json:"email" validate:"required,max=255"`
	Password          string `form:"password" json:"password" validate:"required,min=6"`
	ConfirmPassword   string `form:"confirmPassword" json:"confirmPassword" validate:"required,eqfield=Password"`
	FullName          string `form:"full_name" json:"full_name" validate:"required,max=100"`
	FavoriteCharacter string `form:"favorite_character" json:"favorite_character" validate:"omitempty,max=100"`
}

// LoginInput is the login form.
type LoginInput struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// AuthService handles registration, login and the credential store's
// create path.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	events   EventPublisher
	validate *validator.Validate
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, hasher PasswordHasher, events EventPublisher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		events:   events,
		validate: validator.New(),
	}
}

// CreateUser hashes the password and inserts the user. A taken username or
// email is reported as ErrConflict, whoever won the race.
func (s *AuthService) CreateUser(in models.NewUser) (*models.User, error) {
	hashedPassword, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	favorite := in.FavoriteCharacter
	if favorite == "" {
		favorite = models.DefaultFavoriteCharacter
	}

	user := &models.User{
		Username:          in.Username,
		Email:             in.Email,
		Password:          hashedPassword,
		FullName:          in.FullName,
		FavoriteCharacter: favorite,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newUserError("Username or email already exists! Try another one, barnacle head!", ErrConflict)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Register validates the form, checks for taken credentials and creates the
// user. It does not log the user in.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, registerValidationError(err)
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, newUserError(fmt.Sprintf("Password can't be longer than %d bytes!", MaxPasswordBytes), ErrValidation)
	}

	existingUser, err := s.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, newUserError("Username already exists! Try another one, barnacle head!", ErrConflict)
	}
	existingEmail, err := s.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existingEmail != nil {
		return nil, newUserError("Email already registered!", ErrConflict)
	}

	user, err := s.CreateUser(models.NewUser{
		Username:          in.Username,
		Email:             in.Email,
		Password:          in.Password,
		FullName:          in.FullName,
		FavoriteCharacter: in.FavoriteCharacter,
	})
	if err != nil {
		return nil, err
	}

	s.publish(EventUserRegistered, user.ID, user.Username)
	return user, nil
}

// Login checks the credentials and returns the redacted user to put in the
// session. Unknown usernames and wrong passwords get the same message.
// The caller reports the login with RecordLogin once the session exists.
func (s *AuthService) Login(in LoginInput) (*models.PublicUser, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, newUserError("Please fill in all fields, me boy!", ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, newUserError(invalidCredentialsMessage, ErrInvalidCredentials, ErrNotFound)
	}
	if !s.hasher.Verify(in.Password, user.Password) {
		return nil, newUserError(invalidCredentialsMessage, ErrInvalidCredentials)
	}

	public := user.Public()
	return &public, nil
}

// RecordLogin publishes the login event for a user whose session has been
// established.
func (s *AuthService) RecordLogin(user *models.PublicUser) {
	if user == nil {
		return
	}
	s.publish(EventUserLoggedIn, user.ID, user.Username)
}

// Logout records the end of a session. user may be nil.
func (s *AuthService) Logout(user *models.PublicUser) {
	if user == nil {
		return
	}
	s.publish(EventUserLoggedOut, user.ID, user.Username)
}

const invalidCredentialsMessage = "Wrong username or password! Are you sure you're not Patrick?"

func (s *AuthService) publish(event string, id uint, username string) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"user_id":  id,
		"username": username,
	}
	if err := s.events.PublishUserEvent(event, payload); err != nil {
		log.Printf("Error publishing %s event for %s: %v", event, username, err)
	}
}

// registerValidationError picks the message for the most relevant failed rule:
// missing fields first, then mismatched passwords, then the rest.
func registerValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate registration: %w", err)
	}

	for _, e := range validationErrors {
		if e.Tag() == "required" {
			return newUserError("Please fill in all required fields, me boy!", ErrValidation)
		}
	}
	for _, e := range validationErrors {
		if e.Tag() == "eqfield" {
			return newUserError("Passwords don't match! Are you sure you're not Patrick?", ErrValidation)
		}
	}

	e := validationErrors[0]
	switch {
	case e.Field() == "Password" && e.Tag() == "min":
		return newUserError("Password must be at least 6 characters long!", ErrValidation)
	default:
		return newUserError(fmt.Sprintf("Field '%s' is too long!", e.Field()), ErrValidation)
	}
}
