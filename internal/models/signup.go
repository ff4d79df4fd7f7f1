package models

import "time"

// Sign-up statuses
const (
	SignUpPending   = "pending"
	SignUpAccepted  = "accepted"
	SignUpDeclined  = "declined"
	SignUpCancelled = "cancelled"
)

// SignUpDB represents a sign_ups row in the database
type SignUpDB struct {
	SignUpID  int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	ListingID int64     `db:"listing_id"`
	Status    string    `db:"status"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// SignUpWithEmailDB is a sign-up row joined with its author's email.
type SignUpWithEmailDB struct {
	SignUpDB
	UserEmail string `db:"user_email"`
}

// SignUp is the API representation of a sign-up.
// swagger:model SignUp
type SignUp struct {
	ID        int64     `json:"id" example:"7"`
	UserID    int64     `json:"user_id" example:"2"`
	ListingID int64     `json:"listing_id" example:"1"`
	Status    string    `json:"status" example:"pending"`
	Message   string    `json:"message" example:"count me in"`
	CreatedAt time.Time `json:"created_at"`
	UserEmail string    `json:"user_email,omitempty" example:"volunteer@example.com"`
}

// ToSignUp converts a row to its API shape.
func (s *SignUpDB) ToSignUp() SignUp {
	return SignUp{
		ID:        s.SignUpID,
		UserID:    s.UserID,
		ListingID: s.ListingID,
		Status:    s.Status,
		Message:   s.Message,
		CreatedAt: s.CreatedAt,
	}
}

// ToSignUp converts a joined row to its API shape, including the author's email.
func (s *SignUpWithEmailDB) ToSignUp() SignUp {
	out := s.SignUpDB.ToSignUp()
	out.UserEmail = s.UserEmail
	return out
}
