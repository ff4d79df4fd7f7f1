package services

import (
	"errors"

	"github.com/sbilibin2017/tapin/internal/models"
)

var (
	ErrNotListingOwner = errors.New("unauthorized - you don't own this listing")
	ErrForbidden       = errors.New("unauthorized")
	ErrOwnerStatus     = errors.New("owner can only set status to accepted or declined")
	ErrVolunteerStatus = errors.New("volunteer can only cancel sign-up")
)

// CanManageListing allows only the listing owner. Ownerless listings cannot be managed.
func CanManageListing(actorID int64, listing *models.ListingDB) error {
	if !listing.IsOwnedBy(actorID) {
		return ErrNotListingOwner
	}
	return nil
}

// CanTransition decides whether actorID may move signUp on listing to status.
// The listing owner may accept or decline; the volunteer who signed up may cancel.
// The owner rule wins when the owner signed up for their own listing.
// The current status never restricts the move.
func CanTransition(actorID int64, listing *models.ListingDB, signUp *models.SignUpDB, status string) error {
	switch {
	case listing.IsOwnedBy(actorID):
		if status != models.SignUpAccepted && status != models.SignUpDeclined {
			return ErrOwnerStatus
		}
	case signUp.UserID == actorID:
		if status != models.SignUpCancelled {
			return ErrVolunteerStatus
		}
	default:
		return ErrForbidden
	}
	return nil
}
