//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"shortstay/internal/domain/booking"
	"shortstay/internal/handler/api"
	"shortstay/internal/handler/middleware"
	resdto "shortstay/internal/handler/dto/response"
	"shortstay/internal/pkg/errs"
	"shortstay/internal/usecase/commands"
	"shortstay/internal/usecase/queries"
	"shortstay/tests/common/httptest"
	commandsmock "shortstay/tests/mock/commands"
	queriesmock "shortstay/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockBookingCommands
	mockQueries      *queriesmock.MockBookingQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.BookingHandler
	actorID          uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries, s.mockAvailability)
	s.actorID = uuid.New()

	auth := middleware.RequireActor()
	s.router.POST("/bookings", auth, s.handler.CreateBooking)
	s.router.GET("/bookings", auth, s.handler.ListBookings)
	s.router.GET("/bookings/:id", auth, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", auth, s.handler.CancelBooking)
	s.router.POST("/bookings/:id/checkin", auth, s.handler.CheckIn)
	s.router.GET("/availability", s.handler.CheckAvailability)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func createBookingBody() map[string]any {
	return map[string]any{
		"property_id": uuid.New().String(),
		"check_in":    "2026-04-10T00:00:00Z",
		"check_out":   "2026-04-12T00:00:00Z",
		"guest_count": 2,
	}
}

func sampleView(guestID uuid.UUID) *queries.BookingView {
	return &queries.BookingView{
		ID:            uuid.New(),
		Reference:     "BKG-260410-X7KQ2M",
		GuestID:       guestID,
		HostID:        uuid.New(),
		PropertyID:    uuid.New(),
		PropertyName:  "Lekki Loft",
		CheckIn:       time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
		Nights:        2,
		GuestCount:    2,
		Subtotal:      90_000,
		CleaningFee:   5_000,
		ServiceFee:    6_750,
		Total:         101_750,
		Status:        "CONFIRMED",
		PaymentStatus: "PAID",
		CreatedAt:     time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	created := &commands.BookingCreated{
		ID:              uuid.New(),
		Reference:       "BKG-260410-X7KQ2M",
		Pricing:         booking.Quote(45_000, 5_000, 2),
		Status:          booking.StatusPending,
		PaymentDeadline: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}

	s.Run("success: returns 201 Created with pricing", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBookingBody(), s.actorID.String())

		var response resdto.BookingCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(created.Reference, response.Reference)
		s.Equal("PENDING", response.Status)
		s.Equal(int64(101_750), response.Pricing.Total)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		for _, field := range []string{"property_id", "check_in", "check_out", "guest_count"} {
			s.Run("missing "+field, func() {
				body := createBookingBody()
				delete(body, field)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, s.actorID.String())
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 401 Unauthorized without actor header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBookingBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: 409 response lists the conflicting dates", func() {
		conflictDay := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(&commands.ConflictError{Dates: []time.Time{conflictDay}}, errs.ErrNotAvailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBookingBody(), s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not available")

		var body struct {
			Detail struct {
				ConflictingDates []string `json:"conflicting_dates"`
			} `json:"detail"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal([]string{"2026-04-10"}, body.Detail.ConflictingDates)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "dates not available",
				commandsError:  errs.ErrNotAvailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not available",
			},
			{
				name:           "property not found",
				commandsError:  errs.ErrPropertyNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Property not found",
			},
			{
				name:           "guest count over maximum",
				commandsError:  errs.ErrExceedsMaxGuests,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Guest count",
			},
			{
				name:           "validation failure",
				commandsError:  errs.ErrValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBookingBody(), s.actorID.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := sampleView(s.actorID)

	s.Run("success: returns 200 OK with BookingResponse", func() {
		view := sampleView(s.actorID)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, s.actorID.String())

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Reference, response.Reference)
		s.Equal(view.Total, response.Pricing.Total)
		s.Equal("CONFIRMED", response.Status)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, view.ID).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 Forbidden for a third party", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, view.ID).
			Return(nil, errs.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not allowed")
	})
}

// ================================================================================
// TestListBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("success: returns the caller's bookings", func() {
		views := []*queries.BookingView{sampleView(s.actorID), sampleView(s.actorID)}
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.actorID, 50).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, s.actorID.String())

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: limit query parameter is forwarded", func() {
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.actorID, 10).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=10", nil, s.actorID.String())
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"
	body := map[string]any{"reason": "change of plans"}

	s.Run("success: returns 200 OK with refund decision", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.actorID, bookingID, "change of plans").
			Return(&commands.CancellationResult{RefundAmount: 101_750, FullRefund: true, ProcessingDays: 7}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, s.actorID.String())

		var response resdto.CancellationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.FullRefund)
		s.Equal(int64(101_750), response.RefundAmount)
		s.Equal(7, response.ProcessingDays)
	})

	s.Run("error: 400 Bad Request without a reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "not the guest",
				commandsError:  errs.ErrForbidden,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Not allowed",
			},
			{
				name:           "already cancelled",
				commandsError:  errs.ErrAlreadyCancelled,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already cancelled",
			},
			{
				name:           "past the point of cancellation",
				commandsError:  errs.ErrCannotCancel,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "no longer be cancelled",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), s.actorID, bookingID, "change of plans").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, s.actorID.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCheckIn
// ================================================================================

func (s *BookingHandlerTestSuite) TestCheckIn() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/checkin"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), s.actorID, bookingID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.actorID.String())
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 422 when the booking is not confirmed", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), s.actorID, bookingID).
			Return(errs.ErrNotConfirmed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "not confirmed")
	})

	s.Run("error: 403 when the caller is not the host", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), s.actorID, bookingID).
			Return(errs.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not allowed")
	})
}

// ================================================================================
// TestCheckAvailability
// ================================================================================

func (s *BookingHandlerTestSuite) TestCheckAvailability() {
	propertyID := uuid.New()
	baseURL := "/availability?property_id=" + propertyID.String() + "&check_in=2026-04-10&check_out=2026-04-12"

	s.Run("success: free dates report available", func() {
		s.mockAvailability.EXPECT().Check(gomock.Any(), propertyID, gomock.Any(), gomock.Any()).
			Return(&queries.AvailabilityView{
				PropertyID: propertyID,
				CheckIn:    time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
				CheckOut:   time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
				Available:  true,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Available)
		s.Empty(response.Conflicts)
	})

	s.Run("success: taken dates come back as conflicts", func() {
		conflict := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)
		s.mockAvailability.EXPECT().Check(gomock.Any(), propertyID, gomock.Any(), gomock.Any()).
			Return(&queries.AvailabilityView{
				PropertyID: propertyID,
				Available:  false,
				Conflicts:  []time.Time{conflict},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Available)
		s.Len(response.Conflicts, 1)
	})

	s.Run("error: 400 Bad Request on malformed dates", func() {
		url := "/availability?property_id=" + propertyID.String() + "&check_in=April-10&check_out=2026-04-12"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid check_in date")
	})

	s.Run("error: 400 Bad Request on missing property_id", func() {
		url := "/availability?check_in=2026-04-10&check_out=2026-04-12"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid property ID")
	})
}
