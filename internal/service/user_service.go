// Package service implements the donation lifecycle core: listing, request,
// matching, and handoff state transitions plus their read sides. All
// coordination between concurrent callers happens through the database's
// transactional guarantees; the services hold no mutable state of their own.
package service

import (
	"context"
	"errors"

	"mealbridge/internal/models"
	"mealbridge/internal/repository"

	"gorm.io/gorm"
)

// UserService mirrors external identities into local user records.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// EnsureUser returns the user record for the identity, creating it on first
// use. The call is idempotent; repeated calls return the same record and
// backfill display fields that were empty at creation time.
func (s *UserService) EnsureUser(ctx context.Context, ident models.Identity) (*models.User, error) {
	user, err := s.userRepo.GetByExternalID(ctx, ident.Subject)
	if err == nil {
		changed := false
		if user.Name == "" && ident.Name != "" {
			user.Name = ident.Name
			changed = true
		}
		if user.Phone == "" && ident.Phone != "" {
			user.Phone = ident.Phone
			changed = true
		}
		if changed {
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := models.RoleReceiver
	if ident.Role == string(models.RoleDonor) {
		role = models.RoleDonor
	}
	user = &models.User{
		ExternalID: ident.Subject,
		Email:      ident.Email,
		Name:       ident.Name,
		Phone:      ident.Phone,
		Role:       role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Resolve returns the user record for an identity that must already exist.
func (s *UserService) Resolve(ctx context.Context, ident models.Identity) (*models.User, error) {
	user, err := s.userRepo.GetByExternalID(ctx, ident.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewUnauthorizedError("Unknown user")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
