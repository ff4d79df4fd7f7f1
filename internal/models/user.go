package models

import "time"

// Default role assigned to newly registered users.
const RoleUser = "user"

// UserDB represents a user record in the database
type UserDB struct {
	UserID       int64     `json:"id" db:"id"`                  // Primary key
	Email        string    `json:"email" db:"email"`            // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`        // bcrypt hash
	Role         string    `json:"role" db:"role"`              // Role tag, "user" by default
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}

// User is the public view of a user.
// swagger:model User
type User struct {
	// example: 1
	ID int64 `json:"id"`
	// example: volunteer@example.com
	Email string `json:"email"`
}

// ToUser strips credentials from a user row.
func (u *UserDB) ToUser() User {
	return User{ID: u.UserID, Email: u.Email}
}
