package repository

import authdomain "mailrag-backend/internal/auth/domain"

// UserRepository persists mail accounts and their provider credentials.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	UpdateTokens(userID, accessToken, refreshToken string) error
}
