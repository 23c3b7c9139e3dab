package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// System identifies the calendar a grid is laid out in
type System string

const (
	SystemGregorian System = "gregorian"
	SystemHijri     System = "hijri"
)

var (
	ErrUnknownSystem     = errors.New("unknown calendar system")
	ErrInvalidGridLength = errors.New("a month grid must hold between 28 and 31 days")
	ErrDayOutOfRange     = errors.New("day is outside the month grid")
)

// IsValid checks if the calendar system is supported
func (s System) IsValid() bool {
	switch s {
	case SystemGregorian, SystemHijri:
		return true
	}
	return false
}

// String returns the string representation of System
func (s System) String() string {
	return string(s)
}

// ParseSystem accepts the canonical names plus the French labels shown in the app
func ParseSystem(raw string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gregorian", "grégorien", "gregorien":
		return SystemGregorian, nil
	case "hijri", "hégire", "hegire":
		return SystemHijri, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSystem, raw)
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Grid is one month of day cells. FirstDay is the civil (UTC) date of day 1,
// which is how lunar months are anchored too.
type Grid struct {
	System   System    `json:"system"`
	Label    string    `json:"label"`
	FirstDay time.Time `json:"first_day"`
	Length   int       `json:"length"`
}

// NewGrid validates and builds a month grid
func NewGrid(system System, label string, firstDay time.Time, length int) (Grid, error) {
	if !system.IsValid() {
		return Grid{}, fmt.Errorf("%w: %q", ErrUnknownSystem, system)
	}
	if length < 28 || length > 31 {
		return Grid{}, fmt.Errorf("%w: got %d", ErrInvalidGridLength, length)
	}
	y, m, d := firstDay.Date()
	return Grid{
		System:   system,
		Label:    label,
		FirstDay: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Length:   length,
	}, nil
}

// NewGregorianGrid builds the grid of a civil month, labelled in French ("janvier 2026")
func NewGregorianGrid(year int, month time.Month) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Grid{
		System:   SystemGregorian,
		Label:    fmt.Sprintf("%s %d", frenchMonths[month-1], year),
		FirstDay: first,
		Length:   first.AddDate(0, 1, -1).Day(),
	}
}

// Offset is the number of blank cells before day 1 in a week starting on Sunday
func (g Grid) Offset() int {
	return int(g.FirstDay.Weekday())
}

// Contains reports whether day is a cell of the grid
func (g Grid) Contains(day int) bool {
	return day >= 1 && day <= g.Length
}

// Days lists the day numbers of the grid in order
func (g Grid) Days() []int {
	days := make([]int, g.Length)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// Date resolves a day cell to its civil date
func (g Grid) Date(day int) (time.Time, error) {
	if !g.Contains(day) {
		return time.Time{}, fmt.Errorf("%w: day %d of %q", ErrDayOutOfRange, day, g.Label)
	}
	return g.FirstDay.AddDate(0, 0, day-1), nil
}
