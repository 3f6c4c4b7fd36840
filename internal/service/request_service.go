package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mealbridge/internal/models"
	"mealbridge/internal/notifications"
	"mealbridge/internal/repository"

	"gorm.io/gorm"
)

// RequestService governs individual pickup requests: creation with duplicate
// and self-request prevention, and receiver-side cancellation.
type RequestService struct {
	requestRepo repository.RequestRepository
	listingRepo repository.ListingRepository
	dispatcher  *notifications.Dispatcher
}

// NewRequestService returns a new RequestService.
func NewRequestService(requestRepo repository.RequestRepository, listingRepo repository.ListingRepository, dispatcher *notifications.Dispatcher) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		listingRepo: listingRepo,
		dispatcher:  dispatcher,
	}
}

// Create inserts a PENDING request from the receiver for the listing and
// notifies the donor. Duplicate requests are rejected idempotently, not
// retried.
func (s *RequestService) Create(ctx context.Context, receiver *models.User, listingID uint, message string) (*models.Request, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Listing", listingID)
	}
	if err != nil {
		return nil, err
	}

	if listing.DonorID == receiver.ID {
		return nil, models.NewSelfActionError("You cannot request your own listing")
	}
	if listing.Status != models.ListingStatusActive {
		return nil, models.NewInvalidStateError("This listing is no longer available")
	}

	existing, err := s.requestRepo.GetByListingAndReceiver(ctx, listingID, receiver.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateError("You have already requested this listing")
	}

	request := &models.Request{
		ListingID:  listingID,
		ReceiverID: receiver.ID,
		Message:    strings.TrimSpace(message),
		Status:     models.RequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		// The unique index on (listing, receiver) closes the window between
		// the duplicate check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewDuplicateError("You have already requested this listing")
		}
		return nil, err
	}

	name := receiver.Name
	if name == "" {
		name = "a user"
	}
	s.dispatcher.Dispatch(listing.DonorID, models.NotificationInfo,
		fmt.Sprintf("New request for %q from %s", listing.Title, name),
		"/requests/incoming")

	return request, nil
}

// Cancel deletes a request. Only the owning receiver may cancel, and an
// ACCEPTED request cannot be cancelled unilaterally; that pickup has to be
// coordinated with the donor.
func (s *RequestService) Cancel(ctx context.Context, actor *models.User, requestID uint) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Request", requestID)
	}
	if err != nil {
		return err
	}

	if request.ReceiverID != actor.ID {
		return models.NewUnauthorizedError("Only the requesting receiver can cancel a request")
	}
	if request.Status == models.RequestStatusAccepted {
		return models.NewInvalidStateError("Accepted requests cannot be cancelled; coordinate with the donor")
	}

	return s.requestRepo.Delete(ctx, requestID)
}

// ListMine returns the receiver's own requests.
func (s *RequestService) ListMine(ctx context.Context, receiverID uint) ([]models.Request, error) {
	return s.requestRepo.ListByReceiver(ctx, receiverID)
}

// ListIncoming returns all requests on the donor's listings.
func (s *RequestService) ListIncoming(ctx context.Context, donorID uint) ([]models.Request, error) {
	return s.requestRepo.ListIncoming(ctx, donorID)
}
