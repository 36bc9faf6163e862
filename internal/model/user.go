package model

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// User represents a user in the database.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields. The password is checked in
// plaintext, before it is hashed.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Please provide name"),
			validation.RuneLength(3, 0).Error("Name should be at least 3 characters"),
			validation.RuneLength(0, 50).Error("Name should be at most 50 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("Please provide an email"),
			is.Email.Error("Please enter a valid email"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Please provide a password"),
			validation.RuneLength(6, 0).Error("Password should be at least 6 characters"),
			// bcrypt only accepts up to 72 bytes.
			validation.Length(0, 72).Error("Password should be at most 72 bytes"),
		),
	)
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse represents user data safe for API responses.
type UserResponse struct {
	Name string `json:"name"`
}
