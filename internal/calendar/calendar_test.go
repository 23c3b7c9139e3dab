package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestPickTransitions(t *testing.T) {
	cases := []struct {
		name  string
		from  Selection
		day   int
		want  Selection
		state State
	}{
		{"empty starts range", Selection{}, 10, Selection{Start: 10}, StatePartialRange},
		{"later day closes range", Selection{Start: 10}, 20, Selection{Start: 10, End: 20}, StateFullRange},
		{"earlier day restarts", Selection{Start: 20}, 10, Selection{Start: 10}, StatePartialRange},
		{"same day restarts", Selection{Start: 12}, 12, Selection{Start: 12}, StatePartialRange},
		{"full range starts fresh", Selection{Start: 10, End: 20}, 5, Selection{Start: 5}, StatePartialRange},
		{"full range later day starts fresh", Selection{Start: 10, End: 20}, 25, Selection{Start: 25}, StatePartialRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Pick(tc.from, tc.day)
			if got != tc.want {
				t.Fatalf("Pick(%+v, %d) = %+v, want %+v", tc.from, tc.day, got, tc.want)
			}
			if got.State() != tc.state {
				t.Fatalf("state = %s, want %s", got.State(), tc.state)
			}
		})
	}
}

func TestPickSequences(t *testing.T) {
	s := Pick(Pick(Selection{}, 10), 20)
	if s != (Selection{Start: 10, End: 20}) {
		t.Fatalf("10 then 20 gave %+v", s)
	}

	s = Pick(Pick(Selection{}, 20), 10)
	if s != (Selection{Start: 10}) {
		t.Fatalf("20 then 10 gave %+v", s)
	}
}

func TestSelectionPredicates(t *testing.T) {
	s := Selection{Start: 10, End: 14}

	for _, d := range []int{10, 14} {
		if !s.IsSelected(d) {
			t.Fatalf("day %d should be selected", d)
		}
		if s.IsInRange(d) {
			t.Fatalf("range ends are not in range, day %d", d)
		}
	}
	for _, d := range []int{11, 12, 13} {
		if !s.IsInRange(d) {
			t.Fatalf("day %d should be in range", d)
		}
		if s.IsSelected(d) {
			t.Fatalf("day %d should not be selected", d)
		}
	}
	if s.IsInRange(9) || s.IsInRange(15) {
		t.Fatalf("days outside the range reported in range")
	}

	partial := Selection{Start: 10}
	if partial.IsInRange(11) {
		t.Fatalf("partial range has no interior")
	}
	if partial.IsSelected(0) {
		t.Fatalf("unset end must not select day 0")
	}
}

func TestCanConfirmAndBounds(t *testing.T) {
	if (Selection{}).CanConfirm() {
		t.Fatalf("empty selection must not confirm")
	}
	if _, _, ok := (Selection{}).Bounds(); ok {
		t.Fatalf("empty selection has no bounds")
	}

	single := Selection{Start: 7}
	if !single.CanConfirm() {
		t.Fatalf("single day must confirm")
	}
	start, end, ok := single.Bounds()
	if !ok || start != 7 || end != 7 {
		t.Fatalf("single day bounds = %d..%d ok=%v", start, end, ok)
	}
}

func TestGregorianGrid(t *testing.T) {
	g := NewGregorianGrid(2026, time.January)
	if g.Label != "janvier 2026" {
		t.Fatalf("label = %q", g.Label)
	}
	if g.Length != 31 {
		t.Fatalf("length = %d, want 31", g.Length)
	}
	if g.Offset() != 4 {
		t.Fatalf("offset = %d, want 4 (Thursday)", g.Offset())
	}

	feb := NewGregorianGrid(2026, time.February)
	if feb.Length != 28 {
		t.Fatalf("february length = %d", feb.Length)
	}
	if len(feb.Days()) != 28 || feb.Days()[27] != 28 {
		t.Fatalf("days listing wrong: %v", feb.Days())
	}
}

func TestHijriGrid(t *testing.T) {
	g, err := NewGrid(SystemHijri, "Rajab 1447", time.Date(2025, 12, 22, 15, 0, 0, 0, time.UTC), 30)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Offset() != 1 {
		t.Fatalf("offset = %d, want 1 (Monday)", g.Offset())
	}
	d, err := g.Date(10)
	if err != nil {
		t.Fatalf("Date: %v", err)
	}
	if !d.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day 10 resolved to %v", d)
	}
	if _, err := g.Date(31); !errors.Is(err, ErrDayOutOfRange) {
		t.Fatalf("expected ErrDayOutOfRange, got %v", err)
	}

	if _, err := NewGrid(SystemHijri, "bad", time.Now(), 27); !errors.Is(err, ErrInvalidGridLength) {
		t.Fatalf("expected ErrInvalidGridLength, got %v", err)
	}
	if _, err := NewGrid(System("julian"), "bad", time.Now(), 30); !errors.Is(err, ErrUnknownSystem) {
		t.Fatalf("expected ErrUnknownSystem, got %v", err)
	}
}

func TestSelectorSwitchResets(t *testing.T) {
	hijri, _ := NewGrid(SystemHijri, "Rajab 1447", time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC), 30)
	sel, err := NewSelector(NewGregorianGrid(2026, time.January), hijri)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	if err := sel.Pick(3); err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if err := sel.Pick(9); err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if sel.Selection().State() != StateFullRange {
		t.Fatalf("expected full range, got %+v", sel.Selection())
	}

	if err := sel.Switch(SystemHijri); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if sel.Selection().State() != StateEmpty {
		t.Fatalf("switch must reset selection, got %+v", sel.Selection())
	}
	if sel.Grid().Label != "Rajab 1447" {
		t.Fatalf("active grid = %q", sel.Grid().Label)
	}

	_ = sel.Pick(5)
	if err := sel.Switch(SystemHijri); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if sel.Selection().State() != StateEmpty {
		t.Fatalf("switching to the active system still resets")
	}
}

func TestSelectorPickOutOfGrid(t *testing.T) {
	sel, _ := NewSelector(NewGregorianGrid(2026, time.February))
	_ = sel.Pick(4)

	if err := sel.Pick(30); !errors.Is(err, ErrDayOutOfRange) {
		t.Fatalf("expected ErrDayOutOfRange, got %v", err)
	}
	if sel.Selection() != (Selection{Start: 4}) {
		t.Fatalf("rejected pick mutated state: %+v", sel.Selection())
	}
}

func TestSelectorConfirm(t *testing.T) {
	sel, _ := NewSelector(NewGregorianGrid(2026, time.January))
	if _, err := sel.Confirm(); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("expected ErrNothingSelected, got %v", err)
	}

	_ = sel.Pick(15)
	r, err := sel.Confirm()
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if r.StartDay != 15 || r.EndDay != 15 || r.Nights != 0 {
		t.Fatalf("single day range = %+v", r)
	}
	if !r.StartDate.Equal(r.EndDate) {
		t.Fatalf("single day dates differ: %v %v", r.StartDate, r.EndDate)
	}

	_ = sel.Pick(18)
	r, _ = sel.Confirm()
	if r.Nights != 3 || r.EndDate.Day() != 18 {
		t.Fatalf("range = %+v", r)
	}
}

func TestNewSelectorRejectsDuplicates(t *testing.T) {
	g := NewGregorianGrid(2026, time.January)
	if _, err := NewSelector(g, g); !errors.Is(err, ErrDuplicateGrid) {
		t.Fatalf("expected ErrDuplicateGrid, got %v", err)
	}
	if _, err := NewSelector(); !errors.Is(err, ErrNoGrid) {
		t.Fatalf("expected ErrNoGrid, got %v", err)
	}
}

func TestCrowdLevel(t *testing.T) {
	cases := map[int]Level{
		2:  LevelHigh,
		3:  LevelHigh,
		9:  LevelHigh,
		10: LevelHigh,
		5:  LevelModerate,
		15: LevelModerate,
		1:  LevelLow,
		4:  LevelLow,
	}
	for day, want := range cases {
		if got := CrowdLevel(day); got != want {
			t.Fatalf("CrowdLevel(%d) = %s, want %s", day, got, want)
		}
	}
}
