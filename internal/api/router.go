package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/yonyossef/yiftach-sign/internal/api/handler"
	"github.com/yonyossef/yiftach-sign/internal/api/middleware"
	"github.com/yonyossef/yiftach-sign/internal/core/ports"
)

// RouterOptions carries everything the router needs; backend selection
// happens in cmd, the router only sees ports.
type RouterOptions struct {
	Auth            ports.AuthService
	Panels          ports.PanelService
	SessionTTL      time.Duration
	SecureCookies   bool
	StaticDir       string
	ReadinessChecks []handler.ReadinessCheck
	Log             zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sign"))
	e.Use(middleware.Session(opts.Auth))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(opts.Auth, opts.SessionTTL, opts.SecureCookies)
	panelHandler := handler.NewPanelHandler(opts.Panels)
	healthHandler := handler.NewHealthHandler()
	readyHandler := handler.NewReadinessHandler(opts.ReadinessChecks...)

	// --- Auth routes ---
	e.POST("/api/login", authHandler.Login)
	e.GET("/api/verify", authHandler.Verify)
	e.POST("/api/logout", authHandler.Logout)

	// --- Panel routes ---
	e.GET("/api/data", panelHandler.Get)
	e.GET("/api/display", panelHandler.Display)
	// The write contract is a full replacement; POST is the original wire
	// method, PUT is the semantic alias.
	e.POST("/api/data", panelHandler.Update, middleware.RequireAuth())
	e.PUT("/api/data", panelHandler.Update, middleware.RequireAuth())

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readyHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Static sign + admin pages ---
	if opts.StaticDir != "" {
		e.Static("/", opts.StaticDir)
	}

	return e
}
