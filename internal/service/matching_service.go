package service

import (
	"context"
	"errors"

	"mealbridge/internal/models"
	"mealbridge/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchingService owns the accept transition: the only code path that
// creates a Reservation. The whole transition runs inside one database
// transaction so that two donors' workers racing on the same listing can
// never both succeed.
type MatchingService struct {
	db          *gorm.DB
	requestRepo repository.RequestRepository
}

// NewMatchingService returns a new MatchingService.
func NewMatchingService(db *gorm.DB, requestRepo repository.RequestRepository) *MatchingService {
	return &MatchingService{db: db, requestRepo: requestRepo}
}

// AcceptResult reports the reservation created by a successful accept.
type AcceptResult struct {
	ReservationID  uint   `json:"reservation_id"`
	ConversationID string `json:"conversation_id"`
}

// AcceptRequest converts one pending request into a reservation. Inside a
// single atomic unit it accepts the target request, rejects every other
// pending request on the listing, flips the listing to RESERVED, and creates
// the reservation with a fresh conversation identifier. Any failure aborts
// the whole transition; no partial state is ever observable.
//
// The race guard is the conditional listing update: of two concurrent
// accepts on the same listing, only the transaction that still observes
// ACTIVE proceeds, the other fails with an invalid-state error and may be
// retried by the caller after re-reading current state.
func (s *MatchingService) AcceptRequest(ctx context.Context, donor *models.User, requestID uint) (*AcceptResult, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Request", requestID)
	}
	if err != nil {
		return nil, err
	}

	if request.Listing.DonorID != donor.ID {
		return nil, models.NewUnauthorizedError("Only the listing's donor can accept requests for it")
	}
	if request.Status != models.RequestStatusPending {
		return nil, models.NewInvalidStateError("Request is not pending")
	}

	reservation := &models.Reservation{
		ListingID:      request.ListingID,
		DonorID:        donor.ID,
		ReceiverID:     request.ReceiverID,
		ConversationID: "chat-" + uuid.NewString(),
		Status:         models.ReservationStatusInProgress,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check the listing status inside the transaction. Zero rows
		// affected means a concurrent accept got there first.
		reserve := tx.Model(&models.Listing{}).
			Where("id = ? AND status = ?", request.ListingID, models.ListingStatusActive).
			Update("status", models.ListingStatusReserved)
		if reserve.Error != nil {
			return reserve.Error
		}
		if reserve.RowsAffected == 0 {
			return models.NewInvalidStateError("This listing is no longer available")
		}

		if err := tx.Model(&models.Request{}).
			Where("id = ?", requestID).
			Update("status", models.RequestStatusAccepted).Error; err != nil {
			return err
		}

		// All losing requests are rejected together; there is no ordering
		// preference among them.
		if err := tx.Model(&models.Request{}).
			Where("listing_id = ? AND id <> ? AND status = ?",
				request.ListingID, requestID, models.RequestStatusPending).
			Update("status", models.RequestStatusRejected).Error; err != nil {
			return err
		}

		if err := tx.Create(reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.NewIntegrityError("Reservation uniqueness violated", err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Rejected receivers discover their new status on next read; no
	// notification is sent at acceptance time.
	return &AcceptResult{
		ReservationID:  reservation.ID,
		ConversationID: reservation.ConversationID,
	}, nil
}
