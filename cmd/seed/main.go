package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"guideomra/internal/auth"
	"guideomra/internal/booking"
	"guideomra/internal/catalog"
	"guideomra/internal/reviews"
	"guideomra/internal/shared/config"
	"guideomra/internal/shared/constants"
	"guideomra/internal/shared/database"
	"guideomra/internal/users"
	"guideomra/pkg/cache"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type Seeder struct {
	db       *database.DB
	calendar config.CalendarConfig
	users    users.Repository
	services catalog.Repository
	reviews  reviews.Repository
}

type guideSeed struct {
	name      string
	email     string
	specialty string
	bio       string
	location  string
	price     int
	languages []string
	rating    float64
}

type serviceSeed struct {
	guide         string
	title         string
	description   string
	category      booking.Category
	location      string
	priceOverride *int
	meetingPoints []booking.MeetingPoint
	maxPilgrims   int
}

var guideSeeds = []guideSeed{
	{"Ahmed Al-Farsi", "ahmed@guideomra.test", "Omra complète", "Guide certifié depuis 12 ans à La Mecque.", "La Mecque", 200, []string{"ar", "fr"}, 4.9},
	{"Karim Benali", "karim@guideomra.test", "Ziyarat Médine", "Spécialiste des lieux historiques de Médine.", "Médine", 150, []string{"ar", "fr", "en"}, 4.7},
	{"Sara Omar", "sara@guideomra.test", "Accompagnement des sœurs", "Accompagnement dédié aux femmes et aux familles.", "La Mecque", 300, []string{"ar", "en"}, 4.8},
	{"Youssef Kaboul", "youssef@guideomra.test", "Omra PMR", "Assistance aux pèlerins à mobilité réduite.", "La Mecque", 500, []string{"ar", "fr", "ur"}, 5.0},
}

var meccaPoints = []booking.MeetingPoint{
	{Name: "Hôtel (Makkah)", Supplement: 0},
	{Name: "Gare de La Mecque (Haramain)", Supplement: 30},
	{Name: "Masjid Al Haram (Gate 1)", Supplement: 0},
	{Name: "Jabal Omar", Supplement: 20},
}

func intPtr(v int) *int { return &v }

var serviceSeeds = []serviceSeed{
	{"Ahmed Al-Farsi", "Omra accompagnée", "Accompagnement complet des rites de la Omra.", booking.CategoryGuidedVisit, "La Mecque", nil, meccaPoints, 10},
	{"Ahmed Al-Farsi", "Omra Badal", "Omra accomplie au nom d'un proche.", booking.CategoryOmraBadal, "La Mecque", intPtr(450), meccaPoints[:1], 1},
	{"Karim Benali", "Ziyarat de Médine", "Visite de Quba, Uhud et des sept mosquées.", booking.CategoryGuidedVisit, "Médine", nil, []booking.MeetingPoint{{Name: "Hôtel (Madinah)", Supplement: 0}, {Name: "Masjid An-Nabawi (Porte 25)", Supplement: 0}}, 15},
	{"Karim Benali", "Transfert Médine - La Mecque", "Trajet accompagné entre les deux villes saintes.", booking.CategoryTransport, "Médine", intPtr(250), []booking.MeetingPoint{{Name: "Hôtel (Madinah)", Supplement: 0}}, 6},
	{"Sara Omar", "Omra en famille", "Rythme adapté aux enfants et aux aînés.", booking.CategoryFamily, "La Mecque", nil, meccaPoints, 8},
	{"Youssef Kaboul", "Omra PMR", "Fauteuil et accompagnement pendant le Tawaf et le Sa'i.", booking.CategoryOmraPMR, "La Mecque", nil, meccaPoints[:3], 2},
}

func main() {
	fmt.Println("🌱 Starting Guide Omra Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	db, err := database.InitDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:       db,
		calendar: cfg.Calendar,
		users:    users.NewRepository(db.PostgreSQL),
		services: catalog.NewRepository(db.PostgreSQL),
		reviews:  reviews.NewRepository(db.PostgreSQL),
	}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("\n🌱 Seeding database...")
	pilgrimID, err := seeder.SeedAll(ctx)
	if err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	tokens := auth.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.JWTExpiresIn, cfg.JWT.RefreshExpiresIn)
	pair, err := tokens.IssueTokenPair(auth.Session{UserID: pilgrimID, Email: "pelerin@guideomra.test", Role: auth.RolePilgrim})
	if err != nil {
		log.Fatalf("Failed to issue demo token: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed!")
	fmt.Printf("   Demo pilgrim access token:\n   %s\n", pair.AccessToken)
}

// CleanDatabase truncates all tables, children first
func (s *Seeder) CleanDatabase() error {
	tables := []string{"reservations", "reviews", "services", "guide_details", "profiles"}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds guides, their services and reviews plus one pilgrim, and
// returns the pilgrim's id
func (s *Seeder) SeedAll(ctx context.Context) (uuid.UUID, error) {
	pilgrim := &users.Profile{
		ID:       uuid.New(),
		FullName: "Pèlerin Démo",
		Email:    "pelerin@guideomra.test",
		Role:     auth.RolePilgrim,
	}
	if err := s.users.Upsert(ctx, pilgrim); err != nil {
		return uuid.Nil, fmt.Errorf("failed to seed pilgrim: %w", err)
	}

	guideIDs, err := s.SeedGuides(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to seed guides: %w", err)
	}

	if err := s.SeedServices(ctx, guideIDs); err != nil {
		return uuid.Nil, fmt.Errorf("failed to seed services: %w", err)
	}

	if err := s.SeedReviews(ctx, guideIDs, pilgrim); err != nil {
		return uuid.Nil, fmt.Errorf("failed to seed reviews: %w", err)
	}

	if s.db.Redis != nil {
		if err := cache.NewService(s.db.Redis).DeletePattern(ctx, constants.PATTERN_INVALIDATE_CATALOG); err != nil {
			log.Printf("Warning: Failed to clear catalog cache: %v", err)
		}
	}

	return pilgrim.ID, nil
}

func (s *Seeder) SeedGuides(ctx context.Context) (map[string]uuid.UUID, error) {
	fmt.Println("  🧭 Seeding guides...")

	ids := make(map[string]uuid.UUID, len(guideSeeds))
	for _, g := range guideSeeds {
		id := uuid.New()
		profile := &users.Profile{
			ID:       id,
			FullName: g.name,
			Email:    g.email,
			Role:     auth.RoleGuide,
			Details: &users.GuideDetails{
				ProfileID:    id,
				Specialty:    g.specialty,
				Bio:          g.bio,
				Location:     g.location,
				PricePerDay:  g.price,
				Currency:     "SAR",
				PriceUnit:    "jour",
				Languages:    g.languages,
				Verified:     true,
				Rating:       g.rating,
				ReviewsCount: 1,
			},
		}
		if err := s.users.Upsert(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create guide %s: %w", g.name, err)
		}
		ids[g.name] = id
		fmt.Printf("    ✅ Created guide: %s (%d SAR/jour)\n", g.name, g.price)
	}
	return ids, nil
}

func (s *Seeder) SeedServices(ctx context.Context, guideIDs map[string]uuid.UUID) error {
	fmt.Println("  🕋 Seeding services...")

	// Open from the earliest configured month so both grids are bookable
	start := time.Date(s.calendar.GregorianYear, s.calendar.GregorianMonth, 1, 0, 0, 0, 0, time.UTC)
	if s.calendar.HijriFirstDay.Before(start) {
		start = s.calendar.HijriFirstDay
	}
	end := start.AddDate(1, 0, 0)

	for _, svc := range serviceSeeds {
		record := &catalog.ServiceRecord{
			ID:                uuid.New(),
			GuideID:           guideIDs[svc.guide],
			Title:             svc.title,
			Description:       svc.description,
			Category:          string(svc.category),
			Location:          svc.location,
			PriceOverride:     svc.priceOverride,
			MeetingPoints:     svc.meetingPoints,
			AvailabilityStart: &start,
			AvailabilityEnd:   &end,
			MaxParticipants:   intPtr(svc.maxPilgrims),
			Active:            true,
		}
		if err := s.services.CreateService(ctx, record); err != nil {
			return fmt.Errorf("failed to create service %s: %w", svc.title, err)
		}
		fmt.Printf("    ✅ Created service: %s (%s)\n", svc.title, svc.guide)
	}
	return nil
}

func (s *Seeder) SeedReviews(ctx context.Context, guideIDs map[string]uuid.UUID, reviewer *users.Profile) error {
	fmt.Println("  ⭐ Seeding reviews...")

	for _, g := range guideSeeds {
		review := reviews.Review{
			ID:           uuid.New(),
			GuideID:      guideIDs[g.name],
			ReviewerID:   reviewer.ID,
			ReviewerName: reviewer.FullName,
			Rating:       5,
			Comment:      "Un accompagnement patient et plein de savoir. Qu'Allah le récompense.",
		}
		if err := s.reviews.Create(ctx, &review); err != nil {
			return fmt.Errorf("failed to create review for %s: %w", g.name, err)
		}
	}
	return nil
}
