// Package depth converts a component's position among its routine siblings
// into the draw-order value passed to the target runtime.
package depth

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/stimforge/internal/model"
)

// Routine is the narrow view of a routine that depth needs. Sibling order is
// defined by the routine, not by this package.
type Routine interface {
	RoutineName() string
	// Siblings returns the names of the routine's components in order.
	Siblings() []string
	// SiblingPosition returns the 1-based position of a component.
	SiblingPosition(component string) (int, error)
}

// For returns the depth of component in routine: the negated 1-based
// position, so the first sibling is drawn at -1.0.
func For(component string, routine Routine) (float64, error) {
	pos, err := routine.SiblingPosition(component)
	if err != nil {
		return 0, fmt.Errorf("routine '%s': %w", routine.RoutineName(), err)
	}
	if pos < 1 {
		return 0, &model.OrderingError{Routine: routine.RoutineName(), Components: []string{component}, Position: pos}
	}
	return -float64(pos), nil
}

// ForRoutine computes the depth of every sibling and checks that no two
// siblings share a position.
func ForRoutine(routine Routine) (map[string]float64, error) {
	siblings := routine.Siblings()
	depths := make(map[string]float64, len(siblings))
	byPosition := make(map[int][]string, len(siblings))

	for _, name := range siblings {
		pos, err := routine.SiblingPosition(name)
		if err != nil {
			return nil, fmt.Errorf("routine '%s': %w", routine.RoutineName(), err)
		}
		if pos < 1 {
			return nil, &model.OrderingError{Routine: routine.RoutineName(), Components: []string{name}, Position: pos}
		}
		byPosition[pos] = append(byPosition[pos], name)
		depths[name] = -float64(pos)
	}

	positions := make([]int, 0, len(byPosition))
	for pos := range byPosition {
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	for _, pos := range positions {
		if names := byPosition[pos]; len(names) > 1 {
			return nil, &model.OrderingError{Routine: routine.RoutineName(), Components: names, Position: pos}
		}
	}
	return depths, nil
}
