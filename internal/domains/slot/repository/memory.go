package repository

import (
	"context"
	"fmt"
	"slices"
	"smartpark/internal/domains/slot/model"
	"strings"
	"sync"
)

var _ Slot = (*Memory)(nil)

// Memory is an in-process slot store with a real compare-and-swap, for local runs and tests.
type Memory struct {
	mu    sync.Mutex
	slots map[string]model.Slot
}

func NewMemory(slots ...model.Slot) *Memory {
	store := &Memory{slots: make(map[string]model.Slot, len(slots))}

	for _, slot := range slots {
		store.slots[slot.ID] = slot
	}

	return store
}

func (m *Memory) Get(_ context.Context, id string) (model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.slots[id]
	if !ok {
		return model.Slot{}, fmt.Errorf("%w: %s", model.ErrSlotNotFound, id)
	}

	return slot, nil
}

func (m *Memory) Find(_ context.Context, query model.Query) ([]model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slots := []model.Slot{}

	for _, slot := range m.slots {
		if query.Matches(slot) {
			slots = append(slots, slot)
		}
	}

	model.SortCandidates(slots)

	return slots, nil
}

func (m *Memory) FindByStatus(ctx context.Context, status model.Status, area, floor *int) ([]model.Slot, error) {
	return m.Find(ctx, model.Query{Status: &status, Area: area, Floor: floor})
}

func (m *Memory) FindOccupiedByVehicle(ctx context.Context, vehicleID string) ([]model.Slot, error) {
	status := model.StatusOccupied

	return m.Find(ctx, model.Query{Status: &status, VehicleID: &vehicleID})
}

func (m *Memory) ConditionalUpdate(_ context.Context, id string, change model.Change, cond model.Condition) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.slots[id]
	if !ok || !cond.Holds(slot) {
		return false, nil
	}

	m.slots[id] = change.Apply(slot)

	return true, nil
}

func (m *Memory) GetAll(_ context.Context) ([]model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slots := make([]model.Slot, 0, len(m.slots))
	for _, slot := range m.slots {
		slots = append(slots, slot)
	}

	slices.SortFunc(slots, func(a, b model.Slot) int {
		return strings.Compare(a.ID, b.ID)
	})

	return slots, nil
}
