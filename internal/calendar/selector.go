package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNothingSelected = errors.New("no day selected")
	ErrDuplicateGrid   = errors.New("a grid for this calendar system is already registered")
	ErrNoGrid          = errors.New("no grid registered for calendar system")
)

// Range is a confirmed selection resolved to civil dates
type Range struct {
	System    System    `json:"system"`
	StartDay  int       `json:"start_day"`
	EndDay    int       `json:"end_day"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Nights    int       `json:"nights"`
}

// Selector keeps one grid per calendar system and a single selection on the
// active one. It is not safe for concurrent use; each booking flow owns one.
type Selector struct {
	grids     Grids
	active    System
	selection Selection
}

// NewSelector registers the given grids; the first one is active
func NewSelector(grids ...Grid) (*Selector, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("%w: none given", ErrNoGrid)
	}
	idx, err := NewGrids(grids...)
	if err != nil {
		return nil, err
	}
	return &Selector{grids: idx, active: grids[0].System}, nil
}

func (s *Selector) Grid() Grid { return s.grids[s.active] }
func (s *Selector) System() System { return s.active }
func (s *Selector) Selection() Selection { return s.selection }

// Pick presses a day on the active grid; out-of-grid days leave the state untouched
func (s *Selector) Pick(day int) error {
	g := s.grids[s.active]
	if !g.Contains(day) {
		return fmt.Errorf("%w: day %d of %q", ErrDayOutOfRange, day, g.Label)
	}
	s.selection = Pick(s.selection, day)
	return nil
}

// Switch changes the active calendar system. The selection is always cleared,
// even when switching to the system that is already active.
func (s *Selector) Switch(system System) error {
	if _, err := s.grids.Lookup(system); err != nil {
		return err
	}
	s.active = system
	s.selection = Selection{}
	return nil
}

// Confirm resolves the current selection to dates
func (s *Selector) Confirm() (Range, error) {
	return Resolve(s.grids[s.active], s.selection)
}

// Resolve turns a selection on a grid into a date range
func Resolve(g Grid, sel Selection) (Range, error) {
	start, end, ok := sel.Bounds()
	if !ok {
		return Range{}, ErrNothingSelected
	}
	startDate, err := g.Date(start)
	if err != nil {
		return Range{}, err
	}
	endDate, err := g.Date(end)
	if err != nil {
		return Range{}, err
	}
	return Range{
		System:    g.System,
		StartDay:  start,
		EndDay:    end,
		StartDate: startDate,
		EndDate:   endDate,
		Nights:    end - start,
	}, nil
}
