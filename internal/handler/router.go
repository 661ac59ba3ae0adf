package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shortstay/internal/handler/api"
	"shortstay/internal/handler/middleware"
	"shortstay/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	jobsHandler *api.JobsHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, paymentHandler, jobsHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	jobsHandler *api.JobsHandler,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		// Gateway webhooks carry no user header.
		apiGroup.POST("/payments/webhook", paymentHandler.HandleWebhook)

		authed := apiGroup.Group("")
		authed.Use(middleware.RequireActor())
		{
			bookings := authed.Group("/bookings")
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/checkin", Handler: bookingHandler.CheckIn},
			})

			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/availability", Handler: bookingHandler.CheckAvailability},
				{Method: http.MethodGet, Path: "/wallet", Handler: paymentHandler.GetWallet},
			})

			payments := authed.Group("/payments")
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/initialize", Handler: paymentHandler.InitializePayment},
				{Method: http.MethodGet, Path: "/verify/:reference", Handler: paymentHandler.VerifyPayment},
			})

			adminJobs := authed.Group("/jobs")
			addRoutes(adminJobs, []route{
				{Method: http.MethodGet, Path: "", Handler: jobsHandler.ListJobs},
				{Method: http.MethodPost, Path: "/:name/trigger", Handler: jobsHandler.TriggerJob},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
