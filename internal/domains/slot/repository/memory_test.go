package repository_test

import (
	"context"
	"smartpark/internal/domains/slot/model"
	"smartpark/internal/domains/slot/repository"
	"smartpark/shared"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptySlot(area, floor, number int) model.Slot {
	return model.Slot{
		ID:     model.NewID(area, floor, number),
		Area:   area,
		Floor:  floor,
		Number: number,
		Status: model.StatusEmpty,
	}
}

func claimChange(vehicle string) model.Change {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	return model.Change{
		Status: model.StatusOccupied,
		Occupancy: &model.Occupancy{
			VehicleID:        vehicle,
			HolderContact:    vehicle + "@example.com",
			EntryTime:        now,
			ExpectedExitTime: now.Add(time.Hour),
		},
		ModifiedAt: now,
	}
}

func TestMemory_Get(t *testing.T) {
	store := repository.NewMemory(emptySlot(1, 1, 1))

	slot, err := store.Get(context.Background(), "A1F1S1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusEmpty, slot.Status)

	_, err = store.Get(context.Background(), "A9F9S9")
	assert.ErrorIs(t, err, model.ErrSlotNotFound)
}

func TestMemory_FindOrdersCandidates(t *testing.T) {
	store := repository.NewMemory(emptySlot(2, 1, 3), emptySlot(2, 2, 1), emptySlot(2, 1, 1), emptySlot(3, 1, 1))

	slots, err := store.FindByStatus(context.Background(), model.StatusEmpty, shared.Ptr(2), nil)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "A2F1S1", slots[0].ID)
	assert.Equal(t, "A2F1S3", slots[1].ID)
	assert.Equal(t, "A2F2S1", slots[2].ID)

	slots, err = store.FindByStatus(context.Background(), model.StatusEmpty, shared.Ptr(2), shared.Ptr(2))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "A2F2S1", slots[0].ID)
}

func TestMemory_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory(emptySlot(1, 1, 1))

	ok, err := store.ConditionalUpdate(ctx, "A1F1S1", claimChange("B1"), model.Condition{Status: model.StatusEmpty})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.ConditionalUpdate(ctx, "A1F1S1", claimChange("B2"), model.Condition{Status: model.StatusEmpty})
	require.NoError(t, err)
	assert.False(t, ok, "second claim must be rejected")

	byVehicle, err := store.FindOccupiedByVehicle(ctx, "B1")
	require.NoError(t, err)
	require.Len(t, byVehicle, 1)

	release := model.Change{Status: model.StatusEmpty}

	ok, err = store.ConditionalUpdate(ctx, "A1F1S1", release, model.Condition{Status: model.StatusOccupied, VehicleID: shared.Ptr("B2")})
	require.NoError(t, err)
	assert.False(t, ok, "holder mismatch must be rejected")

	ok, err = store.ConditionalUpdate(ctx, "A1F1S1", release, model.Condition{Status: model.StatusOccupied, VehicleID: shared.Ptr("B1")})
	require.NoError(t, err)
	assert.True(t, ok)

	slot, err := store.Get(ctx, "A1F1S1")
	require.NoError(t, err)
	assert.True(t, slot.Consistent())
	assert.Nil(t, slot.VehicleID)

	ok, err = store.ConditionalUpdate(ctx, "A9F9S9", release, model.Condition{Status: model.StatusOccupied})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory(emptySlot(1, 1, 1))

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)

	for i := range 50 {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			ok, err := store.ConditionalUpdate(ctx, "A1F1S1", claimChange(model.NewID(0, 0, i)), model.Condition{Status: model.StatusEmpty})
			if err == nil && ok {
				wins.Add(1)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestMemory_GetAllSortedByID(t *testing.T) {
	store := repository.NewMemory(emptySlot(2, 1, 1), emptySlot(1, 2, 1), emptySlot(1, 1, 2))

	slots, err := store.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, []string{"A1F1S2", "A1F2S1", "A2F1S1"}, []string{slots[0].ID, slots[1].ID, slots[2].ID})
}
