package booking

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"guideomra/internal/calendar"

	"github.com/google/uuid"
)

const (
	firstSlotHour = 8
	lastSlotHour  = 22
)

// TimeSlots lists the hourly visit times a pilgrim can choose, "08:00" to "22:00"
func TimeSlots() []string {
	slots := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// Draft is a reservation under construction. It is owned by a single booking
// flow and is not safe for concurrent use. Once MarkSubmitted succeeds every
// mutator returns ErrDraftFrozen.
type Draft struct {
	ID uuid.UUID

	service         Service
	grid            calendar.Grid
	selection       calendar.Selection
	pilgrims        []Pilgrim
	meetingPoint    *MeetingPoint
	timeSlot        string
	requireTimeSlot bool
	submitted       bool
}

// NewDraft starts a draft for a service on a month grid, with the booking
// pilgrim already listed and a time slot required
func NewDraft(id uuid.UUID, service Service, grid calendar.Grid) *Draft {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Draft{
		ID:              id,
		service:         service,
		grid:            grid,
		pilgrims:        []Pilgrim{{Name: DefaultPilgrimName}},
		requireTimeSlot: true,
	}
}

func (d *Draft) Service() Service { return d.service }
func (d *Draft) Grid() calendar.Grid { return d.grid }
func (d *Draft) Selection() calendar.Selection { return d.selection }
func (d *Draft) TimeSlot() string { return d.timeSlot }
func (d *Draft) TimeSlotRequired() bool { return d.requireTimeSlot }
func (d *Draft) Submitted() bool { return d.submitted }
func (d *Draft) Pilgrims() []Pilgrim { return slices.Clone(d.pilgrims) }
func (d *Draft) PilgrimLabels() []string { return FormatPilgrims(d.pilgrims) }
func (d *Draft) MeetingPoint() (MeetingPoint, bool) {
	if d.meetingPoint == nil {
		return MeetingPoint{}, false
	}
	return *d.meetingPoint, true
}

func (d *Draft) mutable() error {
	if d.submitted {
		return ErrDraftFrozen
	}
	return nil
}

// RequireTimeSlot toggles whether the flow asks for a visit time
func (d *Draft) RequireTimeSlot(required bool) error {
	if err := d.mutable(); err != nil {
		return err
	}
	d.requireTimeSlot = required
	return nil
}

// SelectService switches the booked service. The meeting point belongs to the
// previous service, so it is cleared.
func (d *Draft) SelectService(s Service) error {
	if err := d.mutable(); err != nil {
		return err
	}
	d.service = s
	d.meetingPoint = nil
	return nil
}

// SelectMeetingPoint picks one of the service's meeting points by name
func (d *Draft) SelectMeetingPoint(name string) error {
	if err := d.mutable(); err != nil {
		return err
	}
	mp, ok := d.service.MeetingPoint(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMeetingPoint, name)
	}
	d.meetingPoint = &mp
	return nil
}

// SelectTimeSlot picks a visit time from TimeSlots
func (d *Draft) SelectTimeSlot(slot string) error {
	if err := d.mutable(); err != nil {
		return err
	}
	if !slices.Contains(TimeSlots(), slot) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeSlot, slot)
	}
	d.timeSlot = slot
	return nil
}

// PickDay presses a day of the draft's grid
func (d *Draft) PickDay(day int) error {
	if err := d.mutable(); err != nil {
		return err
	}
	if !d.grid.Contains(day) {
		return fmt.Errorf("%w: day %d of %q", calendar.ErrDayOutOfRange, day, d.grid.Label)
	}
	d.selection = calendar.Pick(d.selection, day)
	return nil
}

// SetSelection restores a selection made elsewhere, such as a stateless client
func (d *Draft) SetSelection(sel calendar.Selection) error {
	if err := d.mutable(); err != nil {
		return err
	}
	if !sel.Valid(d.grid) {
		return fmt.Errorf("%w: %d..%d of %q", calendar.ErrDayOutOfRange, sel.Start, sel.End, d.grid.Label)
	}
	d.selection = sel
	return nil
}

// SwitchGrid moves the draft to another month grid and clears the selection
func (d *Draft) SwitchGrid(g calendar.Grid) error {
	if err := d.mutable(); err != nil {
		return err
	}
	d.grid = g
	d.selection = calendar.Selection{}
	return nil
}

func newPilgrim(name string, age *int) (Pilgrim, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Pilgrim{}, ErrEmptyPilgrimName
	}
	if age != nil && *age < 0 {
		return Pilgrim{}, ErrNegativeAge
	}
	p := Pilgrim{Name: name}
	if age != nil {
		a := *age
		p.Age = &a
	}
	return p, nil
}

// AddPilgrim appends a participant; the name is trimmed and must not be empty
func (d *Draft) AddPilgrim(name string, age *int) error {
	if err := d.mutable(); err != nil {
		return err
	}
	p, err := newPilgrim(name, age)
	if err != nil {
		return err
	}
	d.pilgrims = append(d.pilgrims, p)
	return nil
}

// UpdatePilgrim replaces the participant at index, including the booking pilgrim
func (d *Draft) UpdatePilgrim(index int, name string, age *int) error {
	if err := d.mutable(); err != nil {
		return err
	}
	if index < 0 || index >= len(d.pilgrims) {
		return fmt.Errorf("%w: %d", ErrPilgrimIndexOutOfRange, index)
	}
	p, err := newPilgrim(name, age)
	if err != nil {
		return err
	}
	d.pilgrims[index] = p
	return nil
}

// RemovePilgrim drops the participant at index. The booking pilgrim at index 0 stays.
func (d *Draft) RemovePilgrim(index int) error {
	if err := d.mutable(); err != nil {
		return err
	}
	if index == 0 {
		return ErrCannotRemoveBookingPilgrim
	}
	if index < 0 || index >= len(d.pilgrims) {
		return fmt.Errorf("%w: %d", ErrPilgrimIndexOutOfRange, index)
	}
	d.pilgrims = slices.Delete(d.pilgrims, index, index+1)
	return nil
}

// BasePrice of the draft's service
func (d *Draft) BasePrice() int {
	return d.service.EffectivePrice()
}

func (d *Draft) supplement() int {
	if d.meetingPoint == nil {
		return 0
	}
	return d.meetingPoint.Supplement
}

// Total is the current price of the draft
func (d *Draft) Total() int {
	return ComputeTotal(d.BasePrice(), len(d.pilgrims), d.supplement())
}

// Quote is the price breakdown of the draft
func (d *Draft) Quote() Quote {
	return NewQuote(d.BasePrice(), len(d.pilgrims), d.supplement())
}

// VisitDates resolves the selection on the draft's grid. A single-day
// selection yields the same start and end date.
func (d *Draft) VisitDates() (start, end time.Time, err error) {
	r, err := calendar.Resolve(d.grid, d.selection)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return r.StartDate, r.EndDate, nil
}

// MarkSubmitted freezes the draft. It succeeds exactly once per draft.
func (d *Draft) MarkSubmitted() error {
	if d.submitted {
		return ErrAlreadySubmitted
	}
	d.submitted = true
	return nil
}

// ValidateDraft reports the first missing input of a draft, in the order the
// form asks for them: location, date, time (when required), pilgrims.
func ValidateDraft(d *Draft) error {
	if d == nil {
		return ErrNilDraft
	}
	if d.meetingPoint == nil {
		return &IncompleteDraftError{Field: FieldLocation}
	}
	if !d.selection.CanConfirm() {
		return &IncompleteDraftError{Field: FieldDate}
	}
	if d.requireTimeSlot && d.timeSlot == "" {
		return &IncompleteDraftError{Field: FieldTime}
	}
	if len(d.pilgrims) == 0 {
		return &IncompleteDraftError{Field: FieldPilgrims}
	}
	return nil
}
