package userRepo

import "schedulit/models"

// UserRepository defines persistence for calendar owners and their tokens.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByGoogleID(googleID string) (*models.User, error)
	Create(user *models.User) error
	SetRefreshToken(id string, sealedToken string) error
	GetRefreshToken(id string) (string, error)
}
