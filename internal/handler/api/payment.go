package api

import (
	"errors"
	"net/http"

	reqdto "shortstay/internal/handler/dto/request"
	resdto "shortstay/internal/handler/dto/response"
	"shortstay/internal/handler/httperr"
	"shortstay/internal/handler/middleware"
	"shortstay/internal/pkg/errs"
	"shortstay/internal/usecase/commands"
	"shortstay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	commands commands.PaymentCommands
	wallets  queries.WalletQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, wallets queries.WalletQueries) *PaymentHandler {
	return &PaymentHandler{commands: cmds, wallets: wallets}
}

func (h *PaymentHandler) InitializePayment(c *gin.Context) {
	actor, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("actor missing from context"), "Internal server error", nil)
		return
	}

	var req reqdto.InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.Initialize(c.Request.Context(), commands.InitializePaymentInput{
		ActorID:    actor,
		BookingID:  req.BookingID,
		PayerEmail: req.Email,
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPaymentInitialized(result))
}

// VerifyPayment handles the browser redirect callback.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	ref := c.Param("reference")
	if ref == "" {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("missing payment reference"), "Missing payment reference", nil)
		return
	}

	result, err := h.commands.Verify(c.Request.Context(), ref)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromVerificationResult(result))
}

// HandleWebhook is the gateway's server-to-server notification. It runs the
// same verification as the callback; whichever lands first wins and the other
// short-circuits as already verified.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	var req reqdto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid webhook payload", nil)
		return
	}

	result, err := h.commands.Verify(c.Request.Context(), req.Reference)
	if err != nil {
		// Unknown references get a 200 so the gateway stops retrying events
		// that are not ours to process.
		if errors.Is(err, errs.ErrPaymentNotFound) {
			c.Status(http.StatusOK)
			return
		}
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromVerificationResult(result))
}

func (h *PaymentHandler) GetWallet(c *gin.Context) {
	actor, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("actor missing from context"), "Internal server error", nil)
		return
	}

	view, err := h.wallets.GetBalance(c.Request.Context(), actor)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromWalletView(view))
}

func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errors.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, errs.ErrPaymentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Payment not found", nil)
	case errors.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed for this booking", nil)
	case errors.Is(err, errs.ErrBookingNotPending):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking is not awaiting payment", nil)
	case errors.Is(err, errs.ErrPaymentNotSuccessful):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Charge was not successful", nil)
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment gateway is unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
