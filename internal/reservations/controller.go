package reservations

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"guideomra/internal/auth"
	"guideomra/internal/shared/utils/response"
	"guideomra/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	submitter Submitter
	validator *validator.Validate
}

func NewController(submitter Submitter) *Controller {
	return &Controller{
		submitter: submitter,
		validator: validator.New(),
	}
}

// respondSubmissionError maps the three failure kinds. Rejection messages are
// shown to the pilgrim as is; unknown failures get a generic message and the
// cause goes to the log only.
func respondSubmissionError(ctx *gin.Context, err error) {
	var se *SubmissionError
	if !errors.As(err, &se) {
		se = unknown(err)
	}
	switch se.Kind {
	case KindNotAuthenticated:
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, se.Message, nil, nil)
	case KindValidationRejected:
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, se.Message, nil, nil)
	default:
		logger.GetDefault().LogHTTPError(ctx, se, http.StatusInternalServerError)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, msgUnknown, nil, nil)
	}
}

func (c *Controller) bindDraft(ctx *gin.Context) (DraftRequest, bool) {
	var req DraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return req, false
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationDetails(err))
		return req, false
	}
	return req, true
}

// QuoteReservation handles POST /api/v1/reservations/quote
func (c *Controller) QuoteReservation(ctx *gin.Context) {
	req, ok := c.bindDraft(ctx)
	if !ok {
		return
	}
	draft, err := c.submitter.BuildDraft(ctx.Request.Context(), req)
	if err != nil {
		respondSubmissionError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Quote computed successfully", c.submitter.Quote(draft), nil)
}

// CreateReservation handles POST /api/v1/reservations
func (c *Controller) CreateReservation(ctx *gin.Context) {
	session := auth.SessionFrom(ctx)
	if !session.IsAuthenticated() {
		respondSubmissionError(ctx, notAuthenticated())
		return
	}
	req, ok := c.bindDraft(ctx)
	if !ok {
		return
	}
	draft, err := c.submitter.BuildDraft(ctx.Request.Context(), req)
	if err != nil {
		respondSubmissionError(ctx, err)
		return
	}

	reservation, err := c.submitter.Submit(ctx.Request.Context(), session, draft)
	if err != nil {
		respondSubmissionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Réservation envoyée", toReservationResponse(*reservation), nil)
}

// ListReservations handles GET /api/v1/reservations
func (c *Controller) ListReservations(ctx *gin.Context) {
	list, err := c.submitter.ListForUser(ctx.Request.Context(), auth.SessionFrom(ctx))
	if err != nil {
		respondSubmissionError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", toReservationResponses(list), nil)
}

// DownloadVoucher handles GET /api/v1/reservations/:id/voucher
func (c *Controller) DownloadVoucher(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation ID", nil, nil)
		return
	}

	reservation, err := c.submitter.GetForUser(ctx.Request.Context(), auth.SessionFrom(ctx), id)
	if errors.Is(err, ErrReservationNotFound) {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Réservation introuvable", nil, nil)
		return
	}
	if err != nil {
		respondSubmissionError(ctx, err)
		return
	}

	pdfBytes, filename, err := RenderVoucher(reservation, time.Now())
	if err != nil {
		respondSubmissionError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "application/pdf", pdfBytes)
}
