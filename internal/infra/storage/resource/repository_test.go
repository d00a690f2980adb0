package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/testutil"
)

func TestRepository_Catalog(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	repo := NewRepository(store.DB, store.Builder)
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	lab, err := repo.Create(ctx, &domain.Resource{
		Name: "Chem Lab", Category: "lab", Capacity: 20,
		OperationalStatus: domain.ResourceAvailable, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NotZero(t, lab.ID)

	hall, err := repo.Create(ctx, &domain.Resource{
		Name: "Assembly Hall", Category: "room", Capacity: 200,
		OperationalStatus: domain.ResourceAvailable, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Resource{
		Name: "Chem Lab", Category: "lab", Capacity: 5,
		OperationalStatus: domain.ResourceAvailable, CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, ErrDuplicateName)

	require.NoError(t, repo.UpdateStatus(ctx, lab.ID, domain.ResourceMaintenance, now.Add(time.Hour)))

	available, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, hall.ID, available[0].ID)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Assembly Hall", all[0].Name)

	got, err := repo.GetByID(ctx, lab.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ResourceMaintenance, got.OperationalStatus)
	assert.Equal(t, 20, got.Capacity)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 9999, domain.ResourceRetired, now), ErrResourceNotFound)
}
