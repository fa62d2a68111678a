package installations

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemory(t *testing.T) (*MemoryRepository, *time.Time) {
	t.Helper()
	r := NewMemoryRepository()
	clock := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return r, &clock
}

func TestMemory_CreateAssignsIdentity(t *testing.T) {
	r, _ := newMemory(t)
	ctx := context.Background()

	got, err := r.Create(ctx, &models.Installation{IntersectionName: "A", Status: models.InstallationPending})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	stored, err := r.Get(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.IntersectionName)

	_, err = r.Get(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_ListOrders(t *testing.T) {
	r, _ := newMemory(t)
	ctx := context.Background()

	a, _ := r.Create(ctx, &models.Installation{IntersectionName: "a", EstimatedInstallDate: models.NewDate(2026, time.October, 20)})
	b, _ := r.Create(ctx, &models.Installation{IntersectionName: "b"})
	c, _ := r.Create(ctx, &models.Installation{IntersectionName: "c", EstimatedInstallDate: models.NewDate(2026, time.October, 5)})

	names := func(list []models.Installation) []string {
		out := make([]string, 0, len(list))
		for _, i := range list {
			out = append(out, i.IntersectionName)
		}
		return out
	}

	byCreated, err := r.List(ctx, ByCreatedDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{c.IntersectionName, b.IntersectionName, a.IntersectionName}, names(byCreated))

	byDate, err := r.List(ctx, ByInstallDateAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, names(byDate))
}

func TestMemory_UpdatesTouchOneRecord(t *testing.T) {
	r, _ := newMemory(t)
	ctx := context.Background()

	a, _ := r.Create(ctx, &models.Installation{IntersectionName: "a", Status: models.InstallationPending})
	b, _ := r.Create(ctx, &models.Installation{IntersectionName: "b", Status: models.InstallationPending})

	got, err := r.UpdateStatus(ctx, a.ID, models.InstallationCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.InstallationCancelled, got.Status)
	assert.True(t, got.UpdatedAt.After(a.UpdatedAt))

	day := models.NewDate(2026, time.November, 2)
	got, err = r.UpdateDate(ctx, a.ID, day)
	require.NoError(t, err)
	assert.Equal(t, day, got.EstimatedInstallDate)

	other, _ := r.Get(ctx, b.ID)
	assert.Equal(t, models.InstallationPending, other.Status)
	assert.True(t, other.EstimatedInstallDate.IsZero())

	_, err = r.UpdateDate(ctx, "ghost", day)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_Delete(t *testing.T) {
	r, _ := newMemory(t)
	ctx := context.Background()

	_, _ = r.Create(ctx, &models.Installation{IntersectionName: "kept"})
	dropped, _ := r.Create(ctx, &models.Installation{IntersectionName: "dropped"})
	r.Delete(dropped.ID)
	r.Delete("ghost")

	list, err := r.List(ctx, ByCreatedDesc)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kept", list[0].IntersectionName)
}
