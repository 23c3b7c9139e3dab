package reservations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"guideomra/internal/auth"
	"guideomra/internal/booking"
	"guideomra/internal/calendar"
	"guideomra/internal/catalog"
	"guideomra/internal/notifications"
	"guideomra/internal/shared/constants"
	"guideomra/pkg/cache"
	"guideomra/pkg/logger"

	"github.com/google/uuid"
)

var ErrOutsideAvailability = errors.New("visit dates fall outside the service availability")

// ServiceLookup resolves the catalog entry a draft books
type ServiceLookup interface {
	GetService(ctx context.Context, id uuid.UUID) (*booking.Service, error)
}

// Submitter turns booking drafts into stored reservations
type Submitter interface {
	BuildDraft(ctx context.Context, req DraftRequest) (*booking.Draft, error)
	Quote(draft *booking.Draft) QuoteResponse
	Submit(ctx context.Context, session *auth.Session, draft *booking.Draft) (*Reservation, error)
	ListForUser(ctx context.Context, session *auth.Session) ([]Reservation, error)
	GetForUser(ctx context.Context, session *auth.Session, id uuid.UUID) (*Reservation, error)
}

type Options struct {
	Grids           calendar.Grids
	DefaultSystem   calendar.System
	RequireTimeSlot bool
	GuardTTL        time.Duration
}

type submitter struct {
	repo      Repository
	services  ServiceLookup
	cache     cache.Service
	publisher notifications.Publisher
	opts      Options
	log       *logger.Logger
}

// NewSubmitter wires the submitter. cacheService may be nil; the unique draft
// id column still keeps submissions at most once.
func NewSubmitter(repo Repository, services ServiceLookup, cacheService cache.Service, publisher notifications.Publisher, opts Options) Submitter {
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	if opts.DefaultSystem == "" {
		opts.DefaultSystem = calendar.SystemGregorian
	}
	if opts.GuardTTL <= 0 {
		opts.GuardTTL = 24 * time.Hour
	}
	return &submitter{
		repo:      repo,
		services:  services,
		cache:     cacheService,
		publisher: publisher,
		opts:      opts,
		log:       logger.GetDefault(),
	}
}

// rejectionMessage turns a draft input error into the text shown in the form
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		return "Service introuvable."
	case errors.Is(err, calendar.ErrUnknownSystem), errors.Is(err, calendar.ErrNoGrid):
		return "Calendrier inconnu."
	case errors.Is(err, calendar.ErrDayOutOfRange):
		return "Date invalide."
	case errors.Is(err, booking.ErrUnknownMeetingPoint):
		return "Lieu de rendez-vous inconnu."
	case errors.Is(err, booking.ErrInvalidTimeSlot):
		return "Heure invalide."
	case errors.Is(err, booking.ErrEmptyPilgrimName):
		return "Le nom du pèlerin est requis."
	case errors.Is(err, booking.ErrNegativeAge):
		return "Âge du pèlerin invalide."
	case errors.Is(err, ErrOutsideAvailability):
		return msgOutsideWindow
	}
	if field, ok := booking.MissingField(err); ok {
		return field.Prompt()
	}
	return "Réservation invalide."
}

// BuildDraft replays a booking form onto a fresh draft. Inputs that are
// absent stay unset so the draft can be quoted while incomplete.
func (s *submitter) BuildDraft(ctx context.Context, req DraftRequest) (*booking.Draft, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, rejected("Service introuvable.", err)
	}
	draftID := uuid.Nil
	if req.DraftID != "" {
		if draftID, err = uuid.Parse(req.DraftID); err != nil {
			return nil, rejected("Réservation invalide.", err)
		}
	}

	svc, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, rejected(rejectionMessage(err), err)
		}
		return nil, unknown(err)
	}

	system := s.opts.DefaultSystem
	if req.Calendar != "" {
		if system, err = calendar.ParseSystem(req.Calendar); err != nil {
			return nil, rejected(rejectionMessage(err), err)
		}
	}
	grid, err := s.opts.Grids.Lookup(system)
	if err != nil {
		return nil, rejected(rejectionMessage(err), err)
	}

	draft := booking.NewDraft(draftID, *svc, grid)
	steps := []func() error{
		func() error { return draft.RequireTimeSlot(s.opts.RequireTimeSlot) },
		func() error {
			return draft.SetSelection(calendar.Selection{Start: req.StartDay, End: req.EndDay})
		},
	}
	if req.MeetingPoint != "" {
		steps = append(steps, func() error { return draft.SelectMeetingPoint(req.MeetingPoint) })
	}
	if req.VisitTime != "" {
		steps = append(steps, func() error { return draft.SelectTimeSlot(req.VisitTime) })
	}
	for i, p := range req.Pilgrims {
		if i == 0 {
			steps = append(steps, func() error { return draft.UpdatePilgrim(0, p.Name, p.Age) })
			continue
		}
		steps = append(steps, func() error { return draft.AddPilgrim(p.Name, p.Age) })
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return nil, rejected(rejectionMessage(err), err)
		}
	}
	return draft, nil
}

// Quote prices the draft and reports the first missing field; it has no side effects
func (s *submitter) Quote(draft *booking.Draft) QuoteResponse {
	resp := QuoteResponse{
		DraftID:   draft.ID,
		Quote:     draft.Quote(),
		Pilgrims:  draft.PilgrimLabels(),
		Complete:  true,
		TimeSlots: booking.TimeSlots(),
	}
	if field, ok := booking.MissingField(booking.ValidateDraft(draft)); ok {
		resp.Complete = false
		resp.MissingField = field
		resp.Prompt = field.Prompt()
	}
	return resp
}

func (s *submitter) reject(ctx context.Context, draft *booking.Draft, se *SubmissionError) error {
	draftID := ""
	if draft != nil {
		draftID = draft.ID.String()
	}
	if se.Kind == KindUnknown {
		s.log.ErrorContext(ctx, "Reservation submission failed",
			slog.String("draft_id", draftID),
			slog.String("error", se.Error()),
		)
		return se
	}
	s.log.LogSubmissionRejected(ctx, draftID, string(se.Kind), se.Error())
	return se
}

// Submit stores the draft as a pending reservation at most once. The checks run
// in order: session, completeness, meeting point and availability, then the
// already-submitted guards.
func (s *submitter) Submit(ctx context.Context, session *auth.Session, draft *booking.Draft) (*Reservation, error) {
	if !session.IsAuthenticated() {
		return nil, s.reject(ctx, draft, notAuthenticated())
	}
	if draft == nil {
		return nil, s.reject(ctx, nil, rejected("Réservation invalide.", booking.ErrNilDraft))
	}
	if err := booking.ValidateDraft(draft); err != nil {
		return nil, s.reject(ctx, draft, rejected(rejectionMessage(err), err))
	}

	svc := draft.Service()
	mp, _ := draft.MeetingPoint()
	if _, ok := svc.MeetingPoint(mp.Name); !ok {
		err := fmt.Errorf("%w: %q", booking.ErrUnknownMeetingPoint, mp.Name)
		return nil, s.reject(ctx, draft, rejected(rejectionMessage(err), err))
	}
	start, end, err := draft.VisitDates()
	if err != nil {
		return nil, s.reject(ctx, draft, rejected(rejectionMessage(err), err))
	}
	if !svc.AvailableOn(start) || !svc.AvailableOn(end) {
		return nil, s.reject(ctx, draft, rejected(msgOutsideWindow, ErrOutsideAvailability))
	}
	if draft.Submitted() {
		return nil, s.reject(ctx, draft, rejected(msgAlreadySubmitted, booking.ErrAlreadySubmitted))
	}

	reservation := &Reservation{
		ID:           uuid.New(),
		UserID:       session.UserID,
		GuideID:      svc.GuideID,
		DraftID:      draft.ID,
		ServiceName:  svc.Title,
		StartDate:    start,
		EndDate:      end,
		VisitTime:    draft.TimeSlot(),
		Location:     mp.Name,
		TotalPrice:   draft.Total(),
		Currency:     booking.Currency,
		PilgrimNames: draft.PilgrimLabels(),
		Status:       StatusPending,
	}
	if reservation.ServiceName == "" {
		reservation.ServiceName = string(svc.Category)
	}
	if svc.ID != uuid.Nil {
		id := svc.ID
		reservation.ServiceID = &id
	}

	release, held := s.acquireGuard(ctx, draft.ID, reservation.ID)
	if !held {
		return nil, s.reject(ctx, draft, rejected(msgAlreadySubmitted, booking.ErrAlreadySubmitted))
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		if errors.Is(err, ErrDuplicateDraft) {
			// the stored reservation owns the guard now
			return nil, s.reject(ctx, draft, rejected(msgAlreadySubmitted, booking.ErrAlreadySubmitted))
		}
		release()
		return nil, s.reject(ctx, draft, unknown(err))
	}

	if err := draft.MarkSubmitted(); err != nil {
		s.log.LogDegraded(ctx, "draft_latch", err)
	}
	s.log.LogReservationSubmitted(ctx, reservation.ID.String(), reservation.GuideID.String(), reservation.UserID.String(), reservation.TotalPrice)
	s.publish(ctx, reservation)
	return reservation, nil
}

// acquireGuard claims the draft id in Redis. When Redis is unreachable the
// submission proceeds and relies on the unique draft id column.
func (s *submitter) acquireGuard(ctx context.Context, draftID, reservationID uuid.UUID) (release func(), held bool) {
	noop := func() {}
	if s.cache == nil {
		return noop, true
	}
	key := constants.BuildSubmissionGuardKey(draftID.String())
	ok, err := s.cache.SetNX(ctx, key, reservationID.String(), s.opts.GuardTTL)
	if err != nil {
		s.log.LogDegraded(ctx, "submission_guard", err)
		return noop, true
	}
	if !ok {
		return noop, false
	}
	return func() {
		delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()
		if err := s.cache.Delete(delCtx, key); err != nil {
			s.log.LogDegraded(delCtx, "submission_guard", err)
		}
	}, true
}

func (s *submitter) publish(ctx context.Context, r *Reservation) {
	event := notifications.NewReservationCreated(r.ID, r.UserID, r.GuideID)
	event.ServiceName = r.ServiceName
	event.StartDate = r.StartDate
	event.EndDate = r.EndDate
	event.VisitTime = r.VisitTime
	event.Location = r.Location
	event.Pilgrims = len(r.PilgrimNames)
	event.TotalPrice = r.TotalPrice
	event.Currency = r.Currency
	if err := s.publisher.PublishReservation(ctx, event); err != nil {
		s.log.LogDegraded(ctx, "reservation_events", err)
	}
}

func (s *submitter) ListForUser(ctx context.Context, session *auth.Session) ([]Reservation, error) {
	if !session.IsAuthenticated() {
		return nil, notAuthenticated()
	}
	list, err := s.repo.ListForUser(ctx, session.UserID)
	if err != nil {
		return nil, unknown(err)
	}
	return list, nil
}

// GetForUser returns ErrReservationNotFound unwrapped so callers can map it
func (s *submitter) GetForUser(ctx context.Context, session *auth.Session, id uuid.UUID) (*Reservation, error) {
	if !session.IsAuthenticated() {
		return nil, notAuthenticated()
	}
	r, err := s.repo.GetForUser(ctx, id, session.UserID)
	if errors.Is(err, ErrReservationNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, unknown(err)
	}
	return r, nil
}
