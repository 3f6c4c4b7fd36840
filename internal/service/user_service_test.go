package service

import (
	"context"
	"testing"

	"mealbridge/internal/models"
	"mealbridge/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	ident := models.Identity{
		Subject: "auth0|abc123",
		Email:   "pat@example.com",
		Name:    "Pat",
		Role:    "DONOR",
	}

	created, err := svc.EnsureUser(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc123", created.ExternalID)
	assert.Equal(t, models.RoleDonor, created.Role)

	// Idempotent: same identity resolves to the same row.
	again, err := svc.EnsureUser(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureUserBackfillsEmptyFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	sparse := models.Identity{Subject: "auth0|sparse", Email: "s@example.com"}
	user, err := svc.EnsureUser(ctx, sparse)
	require.NoError(t, err)
	assert.Empty(t, user.Name)
	assert.Equal(t, models.RoleReceiver, user.Role)

	full := sparse
	full.Name = "Sam"
	full.Phone = "+4791234567"

	user, err = svc.EnsureUser(ctx, full)
	require.NoError(t, err)
	assert.Equal(t, "Sam", user.Name)
	assert.Equal(t, "+4791234567", user.Phone)

	// Backfill persisted, and later claims never overwrite existing values.
	renamed := full
	renamed.Name = "Somebody Else"
	user, err = svc.EnsureUser(ctx, renamed)
	require.NoError(t, err)
	assert.Equal(t, "Sam", user.Name)
}

func TestResolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	known := createUser(t, db, "auth0|known", models.RoleReceiver)

	user, err := svc.Resolve(ctx, models.Identity{Subject: "auth0|known"})
	require.NoError(t, err)
	assert.Equal(t, known.ID, user.ID)

	_, err = svc.Resolve(ctx, models.Identity{Subject: "auth0|ghost"})
	requireCode(t, err, models.CodeUnauthorized)
}
