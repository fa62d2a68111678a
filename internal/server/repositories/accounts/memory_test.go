package accounts

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Lifecycle(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	a, err := r.Create(ctx, &models.MobilityAccount{FirstName: "Ana", Status: models.AccountActive})
	require.NoError(t, err)
	b, err := r.Create(ctx, &models.MobilityAccount{FirstName: "Bo", Status: models.AccountActive})
	require.NoError(t, err)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)

	got, err := r.UpdateStatus(ctx, a.ID, models.AccountInactive)
	require.NoError(t, err)
	assert.Equal(t, models.AccountInactive, got.Status)

	unchanged, err := r.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AccountActive, unchanged.Status)

	_, err = r.UpdateStatus(ctx, "ghost", models.AccountActive)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	empty := NewMemoryRepository()
	list, err = empty.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)

	c, _ := r.Create(ctx, &models.MobilityAccount{FirstName: "Cy"})
	r.Delete(c.ID)
	r.Delete("ghost")
	list, _ = r.List(ctx)
	assert.Len(t, list, 2)
}
