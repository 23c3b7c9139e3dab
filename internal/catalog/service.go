package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guideomra/internal/auth"
	"guideomra/internal/booking"
	"guideomra/internal/calendar"
	"guideomra/internal/reviews"
	"guideomra/internal/shared/constants"
	"guideomra/internal/users"
	"guideomra/pkg/cache"
	"guideomra/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrGuideNotFound      = errors.New("guide not found")
	ErrNotAuthenticated   = errors.New("authentication required")
	ErrNotGuide           = errors.New("only guides can publish services")
	ErrInvalidService     = errors.New("invalid service")
	ErrInvalidReview      = errors.New("invalid review")
)

const (
	guideReviewsLimit = 20
	anonymousReviewer = "Anonyme"
)

type Service interface {
	FetchServices(ctx context.Context) ([]booking.Service, error)
	FetchGuideServices(ctx context.Context, guideID uuid.UUID) ([]booking.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*booking.Service, error)
	Search(ctx context.Context, filter booking.Filter) ([]booking.Service, error)

	ListGuides(ctx context.Context) ([]GuideCard, error)
	GuideProfile(ctx context.Context, guideID uuid.UUID) (*GuideProfile, error)

	CreateService(ctx context.Context, session *auth.Session, req CreateServiceRequest) (*booking.Service, error)
	AddReview(ctx context.Context, session *auth.Session, guideID uuid.UUID, req CreateReviewRequest) (*reviews.Review, error)
}

// Options tunes caching and the grids availability windows are picked on
type Options struct {
	CatalogTTL    time.Duration
	ProfileTTL    time.Duration
	Grids         calendar.Grids
	DefaultSystem calendar.System
}

type service struct {
	repo       Repository
	userRepo   users.Repository
	reviewRepo reviews.Repository
	cache      cache.Service
	opts       Options
	log        *logger.Logger
}

// NewService builds the catalog provider. cacheService may be nil, in which
// case every read goes to the database.
func NewService(repo Repository, userRepo users.Repository, reviewRepo reviews.Repository, cacheService cache.Service, opts Options) Service {
	if opts.DefaultSystem == "" {
		opts.DefaultSystem = calendar.SystemGregorian
	}
	return &service{
		repo:       repo,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		cache:      cacheService,
		opts:       opts,
		log:        logger.GetDefault(),
	}
}

func cachedFetch[T any](ctx context.Context, c cache.Service, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if c == nil {
		return fetch()
	}
	var out T
	err := c.GetOrSet(ctx, key, ttl, func() (interface{}, error) {
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		return v, nil
	}, &out)
	return out, err
}

func (s *service) unavailable(ctx context.Context, operation string, err error) error {
	s.log.LogCatalogUnavailable(ctx, operation, err)
	return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}

func (s *service) FetchServices(ctx context.Context) ([]booking.Service, error) {
	services, err := cachedFetch(ctx, s.cache, constants.CACHE_KEY_SERVICES_ALL, s.opts.CatalogTTL, func() ([]booking.Service, error) {
		records, err := s.repo.ListServices(ctx)
		if err != nil {
			return nil, err
		}
		return toServices(records), nil
	})
	if err != nil {
		return nil, s.unavailable(ctx, "fetch_services", err)
	}
	return services, nil
}

func (s *service) FetchGuideServices(ctx context.Context, guideID uuid.UUID) ([]booking.Service, error) {
	key := constants.BuildGuideServicesKey(guideID.String())
	services, err := cachedFetch(ctx, s.cache, key, s.opts.CatalogTTL, func() ([]booking.Service, error) {
		records, err := s.repo.ListGuideServices(ctx, guideID)
		if err != nil {
			return nil, err
		}
		return toServices(records), nil
	})
	if err != nil {
		return nil, s.unavailable(ctx, "fetch_guide_services", err)
	}
	return services, nil
}

func (s *service) GetService(ctx context.Context, id uuid.UUID) (*booking.Service, error) {
	record, err := s.repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return nil, err
		}
		return nil, s.unavailable(ctx, "get_service", err)
	}
	svc := record.ToService()
	return &svc, nil
}

// Search narrows the full catalog; the filtering itself is pure
func (s *service) Search(ctx context.Context, filter booking.Filter) ([]booking.Service, error) {
	services, err := s.FetchServices(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return services, nil
	}
	return booking.FilterServices(services, filter), nil
}

func (s *service) ListGuides(ctx context.Context) ([]GuideCard, error) {
	cards, err := cachedFetch(ctx, s.cache, constants.CACHE_KEY_GUIDES_ALL, s.opts.ProfileTTL, func() ([]GuideCard, error) {
		guides, err := s.userRepo.ListGuides(ctx)
		if err != nil {
			return nil, err
		}
		cards := make([]GuideCard, 0, len(guides))
		for _, g := range guides {
			cards = append(cards, toGuideCard(g))
		}
		return cards, nil
	})
	if err != nil {
		return nil, s.unavailable(ctx, "list_guides", err)
	}
	return cards, nil
}

// GuideProfile assembles the guide page. Reviews are optional: when they
// cannot be read the page is served without them.
func (s *service) GuideProfile(ctx context.Context, guideID uuid.UUID) (*GuideProfile, error) {
	key := constants.BuildGuideProfileKey(guideID.String())
	card, err := cachedFetch(ctx, s.cache, key, s.opts.ProfileTTL, func() (GuideCard, error) {
		profile, err := s.userRepo.GetGuide(ctx, guideID)
		if err != nil {
			return GuideCard{}, err
		}
		return toGuideCard(*profile), nil
	})
	if err != nil {
		if errors.Is(err, users.ErrProfileNotFound) {
			return nil, ErrGuideNotFound
		}
		return nil, s.unavailable(ctx, "guide_profile", err)
	}

	services, err := s.FetchGuideServices(ctx, guideID)
	if err != nil {
		return nil, err
	}

	guideReviews, err := s.reviewRepo.ListForGuide(ctx, guideID, guideReviewsLimit)
	if err != nil {
		s.log.LogDegraded(ctx, "reviews", err)
		guideReviews = []reviews.Review{}
	}
	for i := range guideReviews {
		if strings.TrimSpace(guideReviews[i].ReviewerName) == "" {
			guideReviews[i].ReviewerName = anonymousReviewer
		}
	}

	return &GuideProfile{Guide: card, Services: services, Reviews: guideReviews}, nil
}

func (s *service) CreateService(ctx context.Context, session *auth.Session, req CreateServiceRequest) (*booking.Service, error) {
	if !session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if !session.HasRole(auth.RoleGuide) {
		return nil, ErrNotGuide
	}

	category, err := booking.ParseCategory(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidService, err)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: a single category is required", ErrInvalidService)
	}

	start, end, err := s.availabilityWindow(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidService, err)
	}

	price := req.Price
	record := &ServiceRecord{
		ID:                uuid.New(),
		GuideID:           session.UserID,
		Title:             strings.TrimSpace(req.Title),
		Description:       strings.TrimSpace(req.Description),
		Category:          string(category),
		Location:          strings.TrimSpace(req.Location),
		PriceOverride:     &price,
		MeetingPoints:     req.MeetingPoints,
		AvailabilityStart: &start,
		AvailabilityEnd:   &end,
		MaxParticipants:   req.MaxParticipants,
		ImageURL:          req.ImageURL,
		Active:            true,
	}
	if err := s.repo.CreateService(ctx, record); err != nil {
		return nil, s.unavailable(ctx, "create_service", err)
	}

	if s.cache != nil {
		if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CATALOG); err != nil {
			s.log.LogDegraded(ctx, "cache_invalidation", err)
		}
	}
	s.log.LogServiceCreated(ctx, record.ID.String(), record.GuideID.String())

	svc := record.ToService()
	return &svc, nil
}

// AddReview stores a pilgrim's rating of an existing guide. The reviewer's
// name is copied from their profile at the time of writing.
func (s *service) AddReview(ctx context.Context, session *auth.Session, guideID uuid.UUID, req CreateReviewRequest) (*reviews.Review, error) {
	if !session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating %d is outside 1..5", ErrInvalidReview, req.Rating)
	}
	if _, err := s.userRepo.GetGuide(ctx, guideID); err != nil {
		if errors.Is(err, users.ErrProfileNotFound) {
			return nil, ErrGuideNotFound
		}
		return nil, s.unavailable(ctx, "create_review", err)
	}

	review := &reviews.Review{
		ID:           uuid.New(),
		GuideID:      guideID,
		ReviewerID:   session.UserID,
		ReviewerName: s.reviewerName(ctx, session.UserID),
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, s.unavailable(ctx, "create_review", err)
	}
	return review, nil
}

func (s *service) reviewerName(ctx context.Context, userID uuid.UUID) string {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, users.ErrProfileNotFound) {
			s.log.LogDegraded(ctx, "reviewer_profile", err)
		}
		return anonymousReviewer
	}
	if name := strings.TrimSpace(profile.FullName); name != "" {
		return name
	}
	return anonymousReviewer
}

// availabilityWindow resolves the picked days to dates on the requested grid
func (s *service) availabilityWindow(req CreateServiceRequest) (time.Time, time.Time, error) {
	system := s.opts.DefaultSystem
	if req.Calendar != "" {
		parsed, err := calendar.ParseSystem(req.Calendar)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		system = parsed
	}
	grid, err := s.opts.Grids.Lookup(system)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	sel := calendar.Selection{Start: req.StartDay, End: req.EndDay}
	if sel.End != 0 && sel.End < sel.Start {
		return time.Time{}, time.Time{}, fmt.Errorf("end day %d is before start day %d", sel.End, sel.Start)
	}
	if !sel.Valid(grid) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d..%d of %q", calendar.ErrDayOutOfRange, sel.Start, sel.End, grid.Label)
	}
	r, err := calendar.Resolve(grid, sel)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return r.StartDate, r.EndDate, nil
}
