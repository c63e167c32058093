package model

import (
	"fmt"
	"time"
)

type Actor string

const (
	ActorSystem Actor = "system"
	ActorAdmin  Actor = "admin"
)

func (a Actor) Valid() bool {
	return a == ActorSystem || a == ActorAdmin
}

type edge struct {
	from Status
	to   Status
}

// Maintenance is admin only and never entered from occupied.
var transitions = map[edge][]Actor{
	{StatusEmpty, StatusOccupied}:    {ActorSystem, ActorAdmin},
	{StatusOccupied, StatusEmpty}:    {ActorSystem, ActorAdmin},
	{StatusEmpty, StatusMaintenance}: {ActorAdmin},
	{StatusMaintenance, StatusEmpty}: {ActorAdmin},
}

// CanTransition returns nil when actor may move a slot from one status to another.
func CanTransition(from, to Status, actor Actor) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: unknown status %q -> %q", ErrInvalidTransition, from, to)
	}

	actors, ok := transitions[edge{from, to}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	for _, allowed := range actors {
		if allowed == actor {
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s is not allowed for %s", ErrInvalidTransition, from, to, actor)
}

// Transition checks the move and builds the change and the condition guarding it.
// Occupancy is required when entering occupied and ignored otherwise.
func Transition(slot Slot, to Status, occupancy *Occupancy, actor Actor, now time.Time) (Change, Condition, error) {
	if err := CanTransition(slot.Status, to, actor); err != nil {
		return Change{}, Condition{}, err
	}

	change := Change{Status: to, ModifiedAt: now}
	condition := Condition{Status: slot.Status}

	if to == StatusOccupied {
		if occupancy == nil {
			return Change{}, Condition{}, InvalidInput("occupancy is required to occupy %s", slot.ID)
		}

		occ := *occupancy
		change.Occupancy = &occ
	}

	if slot.Status == StatusOccupied && slot.VehicleID != nil {
		vehicle := *slot.VehicleID
		condition.VehicleID = &vehicle
	}

	return change, condition, nil
}
