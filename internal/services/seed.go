package services

import (
	"fmt"
	"log"

	"bikinibottom/internal/models"
)

type sampleUser struct {
	user     models.User
	password string
}

var sampleUsers = []sampleUser{
	{
		user: models.User{
			Username:           "spongebob",
			Email:              "spongebob@bikinibottom.com",
			FullName:           "SpongeBob SquarePants",
			FavoriteCharacter:  "Patrick",
			JellyfishCount:     42,
			KrabbyPattiesEaten: 1000,
		},
		password: "pineapple123",
	},
	{
		user: models.User{
			Username:           "patrick",
			Email:              "patrick@bikinibottom.com",
			FullName:           "Patrick Star",
			FavoriteCharacter:  "SpongeBob",
			JellyfishCount:     15,
			KrabbyPattiesEaten: 500,
		},
		password: "rock123",
	},
	{
		user: models.User{
			Username:           "squidward",
			Email:              "squidward@bikinibottom.com",
			FullName:           "Squidward Tentacles",
			FavoriteCharacter:  "Himself",
			JellyfishCount:     0,
			KrabbyPattiesEaten: 5,
		},
		password: "clarinet123",
	},
}

// SeedSampleUsers creates the three sample residents when the store is
// empty. It returns how many users were inserted.
func (s *AuthService) SeedSampleUsers() (int, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("Database already has %d users, skipping seed", count)
		return 0, nil
	}

	for i := range sampleUsers {
		user := sampleUsers[i].user
		hashedPassword, err := s.hasher.Hash(sampleUsers[i].password)
		if err != nil {
			return i, fmt.Errorf("failed to hash password for %s: %w", user.Username, err)
		}
		user.Password = hashedPassword
		if err := s.userRepo.Create(&user); err != nil {
			return i, fmt.Errorf("failed to seed user %s: %w", user.Username, err)
		}
		log.Printf("Seeded user: %s (ID: %d)", user.Username, user.ID)
	}
	return len(sampleUsers), nil
}
