package calendar

// State of a day-range selection
type State string

const (
	StateEmpty        State = "empty"
	StatePartialRange State = "partial_range"
	StateFullRange    State = "full_range"
)

// Selection holds the picked start and end days of a month grid.
// Zero means unset. A set Start with no End is a single-day selection.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// State derives the selection state from the stored days
func (s Selection) State() State {
	switch {
	case s.Start == 0:
		return StateEmpty
	case s.End == 0:
		return StatePartialRange
	default:
		return StateFullRange
	}
}

// Pick applies a day press to the selection.
//
// From Empty or FullRange a press always starts a new range at day. From
// PartialRange a later day closes the range; an earlier or equal day restarts
// it, so pressing the start day again does not confirm a one-day range.
func Pick(s Selection, day int) Selection {
	switch s.State() {
	case StatePartialRange:
		if day > s.Start {
			return Selection{Start: s.Start, End: day}
		}
		return Selection{Start: day}
	default:
		return Selection{Start: day}
	}
}

// IsSelected reports whether day is one of the range ends
func (s Selection) IsSelected(day int) bool {
	if day == 0 {
		return false
	}
	return day == s.Start || day == s.End
}

// IsInRange reports whether day lies strictly between both ends
func (s Selection) IsInRange(day int) bool {
	return s.Start != 0 && s.End != 0 && s.Start < day && day < s.End
}

// CanConfirm is true as soon as a start day is picked
func (s Selection) CanConfirm() bool {
	return s.Start != 0
}

// Bounds returns the inclusive day range, treating a missing end as the start
func (s Selection) Bounds() (start, end int, ok bool) {
	if s.Start == 0 {
		return 0, 0, false
	}
	if s.End == 0 {
		return s.Start, s.Start, true
	}
	return s.Start, s.End, true
}

// Valid reports whether the stored days satisfy start <= end and fit in grid
func (s Selection) Valid(g Grid) bool {
	switch s.State() {
	case StateEmpty:
		return s.End == 0
	case StatePartialRange:
		return g.Contains(s.Start)
	default:
		return g.Contains(s.Start) && g.Contains(s.End) && s.Start <= s.End
	}
}
