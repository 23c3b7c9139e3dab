// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "guideomra/docs"
	"guideomra/internal/auth"
	"guideomra/internal/calendar"
	"guideomra/internal/catalog"
	"guideomra/internal/datepicker"
	"guideomra/internal/notifications"
	"guideomra/internal/reservations"
	"guideomra/internal/reviews"
	"guideomra/internal/shared/config"
	"guideomra/internal/shared/database"
	"guideomra/internal/shared/middleware"
	"guideomra/internal/users"
	"guideomra/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "guideomra-backend"

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	grids     calendar.Grids
	publisher notifications.Publisher

	tokens         auth.Service
	cacheService   cache.Service
	catalogService catalog.Service // shared with the reservation submitter
}

// NewRouter creates a new router instance. publisher may be nil.
func NewRouter(cfg *config.Config, db *database.DB, grids calendar.Grids, publisher notifications.Publisher) *Router {
	r := &Router{
		config:    cfg,
		db:        db,
		grids:     grids,
		publisher: publisher,
		tokens:    auth.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.JWTExpiresIn, cfg.JWT.RefreshExpiresIn),
	}
	if db.Redis != nil {
		r.cacheService = cache.NewService(db.Redis)
	}
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Catalog must come first: reservations look services up through it
		r.setupCatalogRoutes(api)
		r.setupReservationRoutes(api)

		r.setupCalendarRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		checks, err := r.db.HealthCheck(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"checks":    checks,
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"checks":    checks,
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "operational",
			"api_version":  r.config.APIVersion,
			"redis_cache":  r.cacheService != nil,
			"kafka_events": r.config.Kafka.Enabled,
			"timestamp":    time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authController := auth.NewController(r.tokens)
	authRouter := auth.NewRouter(authController, middleware.JWTAuth(r.tokens))

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	pg := r.db.PostgreSQL
	r.catalogService = catalog.NewService(
		catalog.NewRepository(pg),
		users.NewRepository(pg),
		reviews.NewRepository(pg),
		r.cacheService,
		catalog.Options{
			CatalogTTL:    r.config.Redis.CatalogCacheTTL,
			ProfileTTL:    r.config.Redis.ProfileCacheTTL,
			Grids:         r.grids,
			DefaultSystem: calendar.SystemGregorian,
		},
	)
	catalogController := catalog.NewController(r.catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController, r.tokens)
}

func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	submitter := reservations.NewSubmitter(
		reservations.NewRepository(r.db.PostgreSQL),
		r.catalogService,
		r.cacheService,
		r.publisher,
		reservations.Options{
			Grids:           r.grids,
			DefaultSystem:   calendar.SystemGregorian,
			RequireTimeSlot: r.config.Calendar.RequireTime,
			GuardTTL:        r.config.Redis.SubmissionGuardTTL,
		},
	)
	reservationController := reservations.NewController(submitter)

	reservations.SetupReservationRoutes(rg, reservationController, r.tokens)
}

func (r *Router) setupCalendarRoutes(rg *gin.RouterGroup) {
	pickerController := datepicker.NewController(r.grids, calendar.SystemGregorian)

	datepicker.SetupCalendarRoutes(rg, pickerController)
}

// CalendarGrids builds the Gregorian and Hijri month grids from configuration
func CalendarGrids(cfg config.CalendarConfig) (calendar.Grids, error) {
	hijri, err := calendar.NewGrid(calendar.SystemHijri, cfg.HijriLabel, cfg.HijriFirstDay, cfg.HijriLength)
	if err != nil {
		return nil, err
	}
	return calendar.NewGrids(calendar.NewGregorianGrid(cfg.GregorianYear, cfg.GregorianMonth), hijri)
}
