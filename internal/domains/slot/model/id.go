package model

import (
	"fmt"
	"regexp"
	"strconv"
)

var idPattern = regexp.MustCompile(`^A(\d+)F(\d+)S(\d+)$`)

// Location is the composite key of a slot.
type Location struct {
	Area   int
	Floor  int
	Number int
}

// NewID serializes a location, e.g. area 2, floor 1, slot 3 becomes "A2F1S3".
func NewID(area, floor, number int) string {
	return fmt.Sprintf("A%dF%dS%d", area, floor, number)
}

// ParseID is the inverse of NewID.
func ParseID(id string) (Location, error) {
	match := idPattern.FindStringSubmatch(id)
	if match == nil {
		return Location{}, fmt.Errorf("%w: malformed slot id %q", ErrInvalidInput, id)
	}

	parts := make([]int, 0, 3)

	for _, raw := range match[1:] {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return Location{}, fmt.Errorf("%w: malformed slot id %q", ErrInvalidInput, id)
		}

		parts = append(parts, value)
	}

	return Location{Area: parts[0], Floor: parts[1], Number: parts[2]}, nil
}
