package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bikinibottom/internal/models"
	"bikinibottom/internal/repositories"
)

// ProfileInput is the profile update form. Every field is optional.
type ProfileInput struct {
	FullName           string `form:"full_name" json:"full_name"`
	FavoriteCharacter  string `form:"favorite_character" json:"favorite_character"`
	JellyfishCount     string `form:"jellyfish_count" json:"jellyfish_count"`
	KrabbyPattiesEaten string `form:"krabby_patties_eaten" json:"krabby_patties_eaten"`
}

// ProfileService reads and mutates a logged-in user's profile.
type ProfileService struct {
	repo repositories.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo repositories.UserRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

// GetProfile returns the redacted user with the given id.
func (s *ProfileService) GetProfile(id uint) (*models.PublicUser, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound()
	}
	public := user.Public()
	return &public, nil
}

// UpdateProfile applies the supplied fields and returns the stored result.
// Blank text and unparsable counters count as not supplied.
func (s *ProfileService) UpdateProfile(id uint, in ProfileInput) (*models.PublicUser, error) {
	update, err := in.toUpdate()
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return nil, newUserError("No changes to update, me boy!", ErrNoChanges)
	}

	affected, err := s.repo.UpdateFields(id, update)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, userNotFound()
	}
	return s.GetProfile(id)
}

// AddJellyfish records one more caught jellyfish.
func (s *ProfileService) AddJellyfish(id uint) (*models.PublicUser, error) {
	return s.increment(id, models.JellyfishCounter, "Your jellyfish net is full!")
}

// EatPatty records one more eaten Krabby Patty.
func (s *ProfileService) EatPatty(id uint) (*models.PublicUser, error) {
	return s.increment(id, models.PattiesCounter, "Not even SpongeBob could eat another Krabby Patty!")
}

// increment bumps column by one. Zero rows affected means either an unknown
// user or a counter already at models.MaxCounter; the re-read tells them apart.
func (s *ProfileService) increment(id uint, column, fullMessage string) (*models.PublicUser, error) {
	affected, err := s.repo.IncrementCounter(id, column)
	if err != nil {
		return nil, err
	}
	profile, err := s.GetProfile(id)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, newUserError(fullMessage, ErrValidation)
	}
	return profile, nil
}

func userNotFound() error {
	return newUserError("User not found!", ErrNotFound)
}

func (in ProfileInput) toUpdate() (models.UserUpdate, error) {
	var update models.UserUpdate

	if name := strings.TrimSpace(in.FullName); name != "" {
		update.FullName = &name
	}
	if favorite := strings.TrimSpace(in.FavoriteCharacter); favorite != "" {
		update.FavoriteCharacter = &favorite
	}

	jellyfish, err := parseCount("Jellyfish count", in.JellyfishCount)
	if err != nil {
		return update, err
	}
	update.JellyfishCount = jellyfish

	patties, err := parseCount("Krabby Patties count", in.KrabbyPattiesEaten)
	if err != nil {
		return update, err
	}
	update.KrabbyPattiesEaten = patties

	return update, nil
}

// parseCount returns nil for input that is not an integer. Negative integers
// and integers above models.MaxCounter are rejected.
func parseCount(label, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(raw, "-") {
			return nil, counterNegative(label)
		}
		return nil, counterTooBig(label)
	}
	if err != nil {
		return nil, nil
	}
	if n < 0 {
		return nil, counterNegative(label)
	}
	if n > models.MaxCounter {
		return nil, counterTooBig(label)
	}
	return &n, nil
}

func counterNegative(label string) error {
	return newUserError(fmt.Sprintf("%s can't be negative!", label), ErrValidation)
}

func counterTooBig(label string) error {
	return newUserError(fmt.Sprintf("%s can't be more than %d!", label, models.MaxCounter), ErrValidation)
}
