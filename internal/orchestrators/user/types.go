package user

import "github.com/dmforge/initiative-api/internal/entities"

// RegisterInput contains parameters for creating an account
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// RegisterOutput contains the new user and their session token
type RegisterOutput struct {
	User  *entities.User
	Token string
}

// LoginInput contains credentials for an existing account
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput contains the user and their session token
type LoginOutput struct {
	User  *entities.User
	Token string
}

// GetUserInput contains parameters for fetching a user by id
type GetUserInput struct {
	UserID string
}

// GetUserOutput contains the fetched user
type GetUserOutput struct {
	User *entities.User
}
