package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mealbridge/internal/models"
	"mealbridge/internal/notifications"
	"mealbridge/internal/repository"

	"gorm.io/gorm"
)

// HandoffService governs the pickup handshake after acceptance:
// IN_PROGRESS -> WAITING_APPROVAL -> COMPLETED. There are no other
// transitions and no cancellation path once a reservation exists.
type HandoffService struct {
	db              *gorm.DB
	reservationRepo repository.ReservationRepository
	dispatcher      *notifications.Dispatcher
}

// NewHandoffService returns a new HandoffService.
func NewHandoffService(db *gorm.DB, reservationRepo repository.ReservationRepository, dispatcher *notifications.Dispatcher) *HandoffService {
	return &HandoffService{
		db:              db,
		reservationRepo: reservationRepo,
		dispatcher:      dispatcher,
	}
}

// MarkPickedUp records that the receiver collected the food and asks the
// donor to approve completion. Notification delivery is best-effort; its
// failure never rolls back the status transition.
func (s *HandoffService) MarkPickedUp(ctx context.Context, actor *models.User, reservationID uint) (*models.Reservation, error) {
	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.ReceiverID != actor.ID {
		return nil, models.NewUnauthorizedError("Only the receiver can mark the pickup")
	}
	if reservation.Status != models.ReservationStatusInProgress {
		return nil, models.NewInvalidStateError("Pickup can only be marked while the reservation is in progress")
	}

	// Re-check the status in the write itself. Zero rows affected means a
	// concurrent transition got there first.
	mark := s.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", reservationID, models.ReservationStatusInProgress).
		Update("status", models.ReservationStatusWaitingApproval)
	if mark.Error != nil {
		return nil, mark.Error
	}
	if mark.RowsAffected == 0 {
		return nil, models.NewInvalidStateError("Pickup can only be marked while the reservation is in progress")
	}
	reservation.Status = models.ReservationStatusWaitingApproval

	name := actor.Name
	if name == "" {
		name = "The receiver"
	}
	s.dispatcher.Dispatch(reservation.DonorID, models.NotificationInfo,
		fmt.Sprintf("%s has picked up %q. Please approve completion.", name, reservation.Listing.Title),
		"/listings/mine")

	return reservation, nil
}

// ApproveCompletion finalizes the handoff: the reservation and its listing
// move to COMPLETED in one atomic unit and the completion timestamp is set.
// Only the donor may approve, and only once the receiver has marked the
// pickup.
func (s *HandoffService) ApproveCompletion(ctx context.Context, actor *models.User, reservationID uint) (*models.Reservation, error) {
	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.DonorID != actor.ID {
		return nil, models.NewUnauthorizedError("Only the donor can approve completion")
	}
	if reservation.Status != models.ReservationStatusWaitingApproval {
		return nil, models.NewInvalidStateError("Completion can only be approved after the receiver marks the pickup")
	}

	completedAt := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check the status inside the transaction. Zero rows affected
		// means a concurrent approval already completed the handoff.
		approve := tx.Model(&models.Reservation{}).
			Where("id = ? AND status = ?", reservationID, models.ReservationStatusWaitingApproval).
			Updates(map[string]interface{}{
				"status":       models.ReservationStatusCompleted,
				"completed_at": completedAt,
			})
		if approve.Error != nil {
			return approve.Error
		}
		if approve.RowsAffected == 0 {
			return models.NewInvalidStateError("Completion can only be approved after the receiver marks the pickup")
		}
		return tx.Model(&models.Listing{}).
			Where("id = ?", reservation.ListingID).
			Update("status", models.ListingStatusCompleted).Error
	})
	if err != nil {
		return nil, err
	}

	reservation.Status = models.ReservationStatusCompleted
	reservation.CompletedAt = &completedAt

	s.dispatcher.Dispatch(reservation.ReceiverID, models.NotificationSuccess,
		fmt.Sprintf("Your pickup for %q has been approved by the donor.", reservation.Listing.Title),
		"/reservations/mine")

	return reservation, nil
}

// ListMine returns the reservations the user participates in, as donor or
// receiver.
func (s *HandoffService) ListMine(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return s.reservationRepo.ListByParty(ctx, userID)
}

func (s *HandoffService) getReservation(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Reservation", reservationID)
	}
	if err != nil {
		return nil, err
	}
	return reservation, nil
}
