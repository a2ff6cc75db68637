package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/N1k3YB/turistic-agency-sub002/docs"
	"github.com/N1k3YB/turistic-agency-sub002/internal/api/handler"
	"github.com/N1k3YB/turistic-agency-sub002/internal/api/metrics"
	"github.com/N1k3YB/turistic-agency-sub002/internal/api/middleware"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/validation"
)

// Deps are the services and settings the router wires into handlers.
type Deps struct {
	Auth         ports.AuthService
	Users        ports.UserService
	Destinations ports.DestinationService
	Tours        ports.TourService
	Orders       ports.OrderService
	Reviews      ports.ReviewService
	Tickets      ports.TicketService
	Favorites    ports.FavoriteService
	Stats        ports.StatsService

	Validator    *validation.Validator
	Cookie       handler.CookieConfig
	HealthChecks map[string]handler.Check
	Log          zerolog.Logger

	// Registry receives the HTTP request and business collectors and backs
	// /metrics. Nil uses the prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator(d.Validator)
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
		d.Registry.MustRegister(metrics.Collectors()...)
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "agency",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no session) ---
	health := handler.NewHealthHandler(d.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authH := handler.NewAuthHandler(d.Auth, d.Cookie)
	userH := handler.NewUserHandler(d.Users)
	destH := handler.NewDestinationHandler(d.Destinations)
	tourH := handler.NewTourHandler(d.Tours)
	orderH := handler.NewOrderHandler(d.Orders)
	reviewH := handler.NewReviewHandler(d.Reviews)
	ticketH := handler.NewTicketHandler(d.Tickets)
	favH := handler.NewFavoriteHandler(d.Favorites)
	statsH := handler.NewStatsHandler(d.Stats)

	api := e.Group("/api", middleware.Session(d.Auth))
	gate := middleware.Require

	// --- Auth ---
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)

	// --- Profile ---
	api.GET("/me", userH.Profile, gate(access.ActionProfileRead))
	api.PATCH("/me", userH.UpdateProfile, gate(access.ActionProfileUpdate))
	api.GET("/me/reviews", reviewH.ListOwn, gate(access.ActionReviewListOwn))

	// --- Catalog ---
	api.GET("/destinations", destH.List, gate(access.ActionDestinationList))
	api.GET("/destinations/:slug", destH.Get, gate(access.ActionDestinationRead))
	api.POST("/destinations", destH.Create, gate(access.ActionDestinationCreate))
	api.PUT("/destinations/:id", destH.Update, gate(access.ActionDestinationUpdate))
	api.DELETE("/destinations/:id", destH.Delete, gate(access.ActionDestinationDelete))

	api.GET("/tours", tourH.List, gate(access.ActionTourList))
	api.GET("/tours/:slug", tourH.Get, gate(access.ActionTourRead))
	api.POST("/tours", tourH.Create, gate(access.ActionTourCreate))
	api.PUT("/tours/:id", tourH.Update, gate(access.ActionTourUpdate))
	api.DELETE("/tours/:id", tourH.Delete, gate(access.ActionTourDelete))

	api.GET("/tours/:slug/reviews", reviewH.ListForTour, gate(access.ActionReviewListApproved))
	api.POST("/tours/:slug/reviews", reviewH.Create, gate(access.ActionReviewCreate))

	// --- Orders ---
	api.POST("/orders", orderH.Create, gate(access.ActionOrderCreate))
	api.GET("/orders", orderH.ListOwn, gate(access.ActionOrderListOwn))
	api.GET("/orders/:id", orderH.Get, gate(access.ActionOrderRead))

	// --- Tickets ---
	api.POST("/tickets", ticketH.Create, gate(access.ActionTicketCreate))
	api.GET("/tickets", ticketH.ListOwn, gate(access.ActionTicketListOwn))
	api.GET("/tickets/:id", ticketH.Get, gate(access.ActionTicketRead))
	api.POST("/tickets/:id/responses", ticketH.Respond, gate(access.ActionTicketReply))

	// --- Favorites ---
	api.POST("/favorites", favH.Add, gate(access.ActionFavoriteCreate))
	api.GET("/favorites", favH.List, gate(access.ActionFavoriteList))
	api.DELETE("/favorites/:id", favH.Remove, gate(access.ActionFavoriteDelete))

	// --- Back office ---
	admin := api.Group("/admin")
	admin.GET("/users", userH.List, gate(access.ActionUserList))
	admin.PATCH("/users/:id/role", userH.UpdateRole, gate(access.ActionUserUpdateRole))
	admin.DELETE("/users/:id", userH.Delete, gate(access.ActionUserDelete))
	admin.DELETE("/destinations/:id", destH.DeleteCascade, gate(access.ActionDestinationDeleteCascade))

	admin.GET("/reviews", reviewH.ListAll, gate(access.ActionReviewListAll))
	admin.PATCH("/reviews/:id", reviewH.Moderate, gate(access.ActionReviewApprove))
	admin.DELETE("/reviews/:id", reviewH.Delete, gate(access.ActionReviewDelete))

	admin.GET("/orders", orderH.ListAll, gate(access.ActionOrderListAll))
	admin.PATCH("/orders/:id/status", orderH.UpdateStatus, gate(access.ActionOrderUpdateStatus))

	admin.GET("/tickets", ticketH.ListAll, gate(access.ActionTicketListAll))
	admin.PATCH("/tickets/:id/status", ticketH.UpdateStatus, gate(access.ActionTicketUpdateStatus))

	admin.GET("/stats", statsH.Overview, gate(access.ActionStatsRead))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
