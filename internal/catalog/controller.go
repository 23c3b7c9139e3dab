package catalog

import (
	"errors"
	"net/http"

	"guideomra/internal/auth"
	"guideomra/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// respondReadError maps catalog read failures; an unavailable catalog is a 503
// so clients can offer a retry
func respondReadError(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, ErrCatalogUnavailable):
		response.RespondJSON(ctx, "error", http.StatusServiceUnavailable, "Catalogue indisponible, veuillez réessayer", nil, nil)
	case errors.Is(err, ErrGuideNotFound), errors.Is(err, ErrServiceNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, message, nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, nil)
	}
}

func parseID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// SearchServices handles GET /api/v1/services
func (c *Controller) SearchServices(ctx *gin.Context) {
	var query SearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid filter", nil, err.Error())
		return
	}

	services, err := c.service.Search(ctx.Request.Context(), filter)
	if err != nil {
		respondReadError(ctx, "Failed to get services", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Services retrieved successfully", SearchResponse{
		Services: services,
		Count:    len(services),
		Filter:   filter,
	}, nil)
}

// GetService handles GET /api/v1/services/:id
func (c *Controller) GetService(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	svc, err := c.service.GetService(ctx.Request.Context(), id)
	if err != nil {
		respondReadError(ctx, "Failed to get service", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Service retrieved successfully", svc, nil)
}

// ListGuides handles GET /api/v1/guides
func (c *Controller) ListGuides(ctx *gin.Context) {
	guides, err := c.service.ListGuides(ctx.Request.Context())
	if err != nil {
		respondReadError(ctx, "Failed to get guides", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Guides retrieved successfully", guides, nil)
}

// GetGuide handles GET /api/v1/guides/:id
func (c *Controller) GetGuide(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	profile, err := c.service.GuideProfile(ctx.Request.Context(), id)
	if err != nil {
		respondReadError(ctx, "Failed to get guide", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Guide retrieved successfully", profile, nil)
}

// GetGuideServices handles GET /api/v1/guides/:id/services
func (c *Controller) GetGuideServices(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	services, err := c.service.FetchGuideServices(ctx.Request.Context(), id)
	if err != nil {
		respondReadError(ctx, "Failed to get guide services", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Guide services retrieved successfully", services, nil)
}

// CreateService handles POST /api/v1/guide/services
func (c *Controller) CreateService(ctx *gin.Context) {
	var req CreateServiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Veuillez remplir tous les champs (y compris la date)", nil, response.ValidationDetails(err))
		return
	}

	svc, err := c.service.CreateService(ctx.Request.Context(), auth.SessionFrom(ctx), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAuthenticated):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Vous devez être connecté.", nil, nil)
		case errors.Is(err, ErrNotGuide):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Seuls les guides peuvent créer des services.", nil, nil)
		case errors.Is(err, ErrInvalidService):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Impossible de créer le service", nil, err.Error())
		default:
			respondReadError(ctx, "Impossible de créer le service", err)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Votre service a été créé avec succès !", svc, nil)
}

// CreateReview handles POST /api/v1/guides/:id/reviews
func (c *Controller) CreateReview(ctx *gin.Context) {
	guideID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "La note doit être comprise entre 1 et 5", nil, response.ValidationDetails(err))
		return
	}

	review, err := c.service.AddReview(ctx.Request.Context(), auth.SessionFrom(ctx), guideID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAuthenticated):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Vous devez être connecté pour laisser un avis.", nil, nil)
		case errors.Is(err, ErrInvalidReview):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Avis invalide", nil, err.Error())
		default:
			respondReadError(ctx, "Impossible d'enregistrer l'avis", err)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Merci pour votre avis !", review, nil)
}
