package model_test

import (
	"smartpark/internal/domains/allocation/model"
	slotModel "smartpark/internal/domains/slot/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRankWaits(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	slot := func(id string, in time.Duration) slotModel.Slot {
		expected := now.Add(in)

		return slotModel.Slot{ID: id, Status: slotModel.StatusOccupied, ExpectedExitTime: &expected}
	}

	slots := []slotModel.Slot{
		slot("A1F1S1", 45*time.Minute),
		slot("A1F1S2", -5*time.Minute),
		slot("A1F1S3", 5*time.Minute+30*time.Second),
		slot("A1F1S4", 20*time.Minute),
		slot("A1F1S5", 90*time.Minute),
		slot("A1F1S6", 0),
		{ID: "A1F1S7", Status: slotModel.StatusEmpty},
	}

	got := model.RankWaits(slots, now, 3)

	assert.Len(t, got, 3)
	assert.Equal(t, "A1F1S3", got[0].SlotID)
	assert.Equal(t, 5, got[0].WaitMinutes)
	assert.Equal(t, "A1F1S4", got[1].SlotID)
	assert.Equal(t, 20, got[1].WaitMinutes)
	assert.Equal(t, "A1F1S1", got[2].SlotID)

	assert.Len(t, model.RankWaits(slots, now, 0), 4)
	assert.Empty(t, model.RankWaits(nil, now, 3))
}

func TestRankWaits_TiesBreakBySlotID(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	expected := now.Add(10 * time.Minute)

	got := model.RankWaits([]slotModel.Slot{
		{ID: "A1F2S1", Status: slotModel.StatusOccupied, ExpectedExitTime: &expected},
		{ID: "A1F1S9", Status: slotModel.StatusOccupied, ExpectedExitTime: &expected},
	}, now, 3)

	assert.Equal(t, []string{"A1F1S9", "A1F2S1"}, []string{got[0].SlotID, got[1].SlotID})
}
