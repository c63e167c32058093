package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"smartpark/config"
	otelMocks "smartpark/infras/otel/mocks"
	"smartpark/internal/domains/slot/model"
	"smartpark/internal/domains/slot/model/dto"
	"smartpark/internal/domains/slot/repository"
	repoMocks "smartpark/internal/domains/slot/repository/mocks"
	"smartpark/internal/domains/slot/service"
	notifierMocks "smartpark/internal/integrations/notifier/mocks"
	"smartpark/shared/cache"
	cacheMocks "smartpark/shared/cache/mocks"
	"smartpark/shared/timezone"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	notifier *notifierMocks.MockNotifier
	cache    *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	return fixture{
		notifier: notifierMocks.NewMockNotifier(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}
}

func (f fixture) service(repo repository.Slot) service.Slot {
	cfg := &config.Config{}
	cfg.Cache.TTL = 30

	return service.New(repo, f.notifier, f.cache, timezone.FixedClock(now), cfg, otelMocks.NewOtel())
}

func slot(area, floor, number int, status model.Status) model.Slot {
	s := model.Slot{ID: model.NewID(area, floor, number), Area: area, Floor: floor, Number: number, Status: status}

	if status == model.StatusOccupied {
		vehicle, email := "B1", "b1@example.com"
		entry, exit := now.Add(-time.Hour), now.Add(time.Hour)
		s.VehicleID, s.HolderContact, s.EntryTime, s.ExpectedExitTime = &vehicle, &email, &entry, &exit
	}

	return s
}

func TestSlotService_Get(t *testing.T) {
	f := newFixture(t)
	svc := f.service(repository.NewMemory(slot(1, 1, 3, model.StatusOccupied)))

	res, err := svc.Get(context.Background(), "A1F1S3")
	require.NoError(t, err)
	assert.Equal(t, "occupied", res.Status)
	require.NotNil(t, res.VehicleID)
	assert.Equal(t, "B1", *res.VehicleID)

	_, err = svc.Get(context.Background(), "A1F1S4")
	assert.ErrorIs(t, err, model.ErrSlotNotFound)

	_, err = svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestSlotService_ChangeStatus(t *testing.T) {
	f := newFixture(t)
	f.cache.EXPECT().Delete(gomock.Any(), model.CacheKeyOccupancy).Return(nil).AnyTimes()

	store := repository.NewMemory(
		slot(1, 1, 1, model.StatusEmpty),
		slot(1, 1, 2, model.StatusOccupied),
		slot(1, 1, 3, model.StatusMaintenance),
	)
	svc := f.service(store)

	res, err := svc.ChangeStatus(context.Background(), dto.ChangeStatusRequest{
		SlotIDs: []string{"A1F1S1", "A1F1S2", "A1F1S3", "A9F9S9"},
		Status:  model.StatusMaintenance,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"A1F1S1", "A1F1S3"}, res.UpdatedSlots, "already in maintenance counts as updated")
	require.Len(t, res.FailedSlots, 2)
	assert.Equal(t, "A1F1S2", res.FailedSlots[0].SlotID)
	assert.Equal(t, "A9F9S9", res.FailedSlots[1].SlotID)
	assert.Equal(t, "Set 2 of 4 slots to maintenance.", res.Message)

	got, err := store.Get(context.Background(), "A1F1S2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusOccupied, got.Status, "occupied slots never enter maintenance")
}

func TestSlotService_ChangeStatusBackToEmptyAnnounces(t *testing.T) {
	f := newFixture(t)
	f.cache.EXPECT().Delete(gomock.Any(), model.CacheKeyOccupancy).Return(nil).AnyTimes()

	announced := make(chan string, 1)
	f.notifier.EXPECT().Announce(gomock.Any(), "A2F1S4", 2, 1).
		DoAndReturn(func(_ context.Context, id string, _, _ int) error {
			announced <- id

			return nil
		})

	store := repository.NewMemory(slot(2, 1, 4, model.StatusMaintenance))

	res, err := f.service(store).ChangeStatus(context.Background(), dto.ChangeStatusRequest{
		SlotIDs: []string{"A2F1S4"},
		Status:  model.StatusEmpty,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A2F1S4"}, res.UpdatedSlots)

	select {
	case <-announced:
	case <-time.After(time.Second):
		t.Fatal("vacancy was not announced")
	}
}

func TestSlotService_ChangeStatusRejects(t *testing.T) {
	f := newFixture(t)
	svc := f.service(repository.NewMemory())

	_, err := svc.ChangeStatus(context.Background(), dto.ChangeStatusRequest{SlotIDs: []string{"A1F1S1"}, Status: model.StatusOccupied})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.ChangeStatus(context.Background(), dto.ChangeStatusRequest{Status: model.StatusEmpty})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestSlotService_ChangeStatusStoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	repo := repoMocks.NewMockSlot(ctrl)

	repo.EXPECT().Get(gomock.Any(), "A1F1S1").Return(model.Slot{}, model.StoreUnavailable(errors.New("timeout")))

	_, err := f.service(repo).ChangeStatus(context.Background(), dto.ChangeStatusRequest{
		SlotIDs: []string{"A1F1S1", "A1F1S2"},
		Status:  model.StatusMaintenance,
	})
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestSlotService_Occupancy(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), model.CacheKeyOccupancy, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.OccupancyResponse)
				require.True(t, ok)
				res.TotalSpots = 42

				return nil
			})

		res, err := f.service(repository.NewMemory()).Occupancy(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, res.TotalSpots)
	})

	t.Run("cache miss", func(t *testing.T) {
		f := newFixture(t)

		saved := make(chan dto.OccupancyResponse, 1)
		f.cache.EXPECT().Get(gomock.Any(), model.CacheKeyOccupancy, gomock.Any()).Return(cache.Nil)
		f.cache.EXPECT().Save(gomock.Any(), model.CacheKeyOccupancy, gomock.Any(), 30).
			DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
				saved <- value.(dto.OccupancyResponse)

				return nil
			})

		store := repository.NewMemory(
			slot(1, 1, 1, model.StatusOccupied),
			slot(1, 1, 2, model.StatusEmpty),
			slot(2, 1, 1, model.StatusOccupied),
		)

		res, err := f.service(store).Occupancy(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 3, res.TotalSpots)
		assert.Equal(t, 2, res.OccupiedSpots)
		assert.Equal(t, 1, res.AvailableSpots)
		assert.InDelta(t, 66.67, res.OccupancyRate, 0.01)
		require.Len(t, res.Areas, 2)
		assert.Equal(t, model.LabelPartial, res.Areas[0].Status)
		assert.Equal(t, model.LabelFull, res.Areas[1].Status)
		assert.Len(t, res.Slots, 3)

		select {
		case got := <-saved:
			assert.Equal(t, 3, got.TotalSpots)
		case <-time.After(time.Second):
			t.Fatal("occupancy was not cached")
		}
	})
}
