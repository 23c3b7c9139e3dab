package calendar

import "fmt"

// Grids indexes month grids by calendar system
type Grids map[System]Grid

// NewGrids registers one grid per system
func NewGrids(grids ...Grid) (Grids, error) {
	idx := make(Grids, len(grids))
	for _, g := range grids {
		if _, exists := idx[g.System]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGrid, g.System)
		}
		idx[g.System] = g
	}
	return idx, nil
}

// Lookup returns the grid of a system
func (gs Grids) Lookup(system System) (Grid, error) {
	g, ok := gs[system]
	if !ok {
		return Grid{}, fmt.Errorf("%w: %s", ErrNoGrid, system)
	}
	return g, nil
}
