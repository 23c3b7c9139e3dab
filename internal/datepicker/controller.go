package datepicker

import (
	"errors"
	"net/http"

	"guideomra/internal/calendar"
	"guideomra/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Controller serves the date picker. It keeps no state: the client sends the
// current selection with every press.
type Controller struct {
	grids         calendar.Grids
	defaultSystem calendar.System
	validator     *validator.Validate
}

func NewController(grids calendar.Grids, defaultSystem calendar.System) *Controller {
	if defaultSystem == "" {
		defaultSystem = calendar.SystemGregorian
	}
	return &Controller{
		grids:         grids,
		defaultSystem: defaultSystem,
		validator:     validator.New(),
	}
}

func (c *Controller) lookup(ctx *gin.Context, raw string) (calendar.Grid, bool) {
	system := c.defaultSystem
	if raw != "" {
		parsed, err := calendar.ParseSystem(raw)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Calendrier inconnu", nil, err.Error())
			return calendar.Grid{}, false
		}
		system = parsed
	}
	grid, err := c.grids.Lookup(system)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Calendrier indisponible", nil, err.Error())
		return calendar.Grid{}, false
	}
	return grid, true
}

// GetGrid handles GET /api/v1/calendar/:system
func (c *Controller) GetGrid(ctx *gin.Context) {
	grid, ok := c.lookup(ctx, ctx.Param("system"))
	if !ok {
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Calendar retrieved successfully", toGridResponse(grid), nil)
}

// Pick handles POST /api/v1/calendar/pick
func (c *Controller) Pick(ctx *gin.Context) {
	var req PickRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationDetails(err))
		return
	}
	grid, ok := c.lookup(ctx, req.System)
	if !ok {
		return
	}

	current := calendar.Selection{Start: req.Start, End: req.End}
	if !current.Valid(grid) {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Sélection invalide", nil, nil)
		return
	}
	if !grid.Contains(req.Day) {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Date invalide", nil, calendar.ErrDayOutOfRange.Error())
		return
	}

	next := calendar.Pick(current, req.Day)
	resp := PickResponse{
		Start:      next.Start,
		End:        next.End,
		State:      next.State(),
		CanConfirm: next.CanConfirm(),
	}
	if r, err := calendar.Resolve(grid, next); err == nil {
		resp.Range = &r
	} else if !errors.Is(err, calendar.ErrNothingSelected) {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to resolve selection", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Selection updated", resp, nil)
}
