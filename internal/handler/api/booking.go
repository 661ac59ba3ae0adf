package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "shortstay/internal/handler/dto/request"
	resdto "shortstay/internal/handler/dto/response"
	"shortstay/internal/handler/httperr"
	"shortstay/internal/handler/middleware"
	"shortstay/internal/pkg/errs"
	"shortstay/internal/usecase/commands"
	"shortstay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands     commands.BookingCommands
	queries      queries.BookingQueries
	availability queries.AvailabilityQueries
}

func NewBookingHandler(
	cmds commands.BookingCommands,
	qs queries.BookingQueries,
	availability queries.AvailabilityQueries,
) *BookingHandler {
	return &BookingHandler{commands: cmds, queries: qs, availability: availability}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("actor missing from context"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.Create(c.Request.Context(), commands.CreateBookingInput{
		GuestID:    actor,
		PropertyID: req.PropertyID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		GuestCount: req.GuestCount,
		GuestNotes: req.Notes(),
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingCreated(result))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("actor missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("actor missing from context"), "Internal server error", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	views, err := h.queries.ListForUser(c.Request.Context(), actor, limit)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response := make([]*resdto.BookingResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromBookingView(v)
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("actor missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.Cancel(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancellationResult(result))
}

func (h *BookingHandler) CheckIn(c *gin.Context) {
	actor, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("actor missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.commands.CheckIn(c.Request.Context(), actor, id); err != nil {
		respondBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckAvailability answers the advisory date-range check. The booking
// transaction remains the only authority; this endpoint exists so clients can
// grey out taken dates before the guest commits.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Query("property_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid property ID format", nil)
		return
	}
	checkIn, err := time.Parse("2006-01-02", c.Query("check_in"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid check_in date, expected YYYY-MM-DD", nil)
		return
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("check_out"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid check_out date, expected YYYY-MM-DD", nil)
		return
	}

	view, err := h.availability.Check(c.Request.Context(), propertyID, checkIn, checkOut)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errors.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, errs.ErrPropertyNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Property not found", nil)
	case errors.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed for this booking", nil)
	case errors.Is(err, errs.ErrNotAvailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Requested dates are not available", conflictDetail(err))
	case errors.Is(err, errs.ErrExceedsMaxGuests):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Guest count exceeds property maximum", nil)
	case errors.Is(err, errs.ErrAlreadyCancelled):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking is already cancelled", nil)
	case errors.Is(err, errs.ErrCannotCancel):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Booking can no longer be cancelled", nil)
	case errors.Is(err, errs.ErrNotConfirmed):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Booking is not confirmed", nil)
	case errors.Is(err, errs.ErrBookingNotPending):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking is not awaiting payment", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// conflictDetail surfaces the specific conflicting dates when the error
// carries them.
func conflictDetail(err error) any {
	var conflict *commands.ConflictError
	if !errors.As(err, &conflict) {
		return nil
	}
	dates := make([]string, len(conflict.Dates))
	for i, d := range conflict.Dates {
		dates[i] = d.Format("2006-01-02")
	}
	return gin.H{"conflicting_dates": dates}
}
