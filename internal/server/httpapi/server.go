// Package httpapi serves the salon pages and the JSON API over echo.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/logging"
	"github.com/ansuman15/salon-software-sub002/internal/server/metrics"
	"github.com/ansuman15/salon-software-sub002/internal/server/ratelimit"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const (
	maxBodySize     = "2M"
	shutdownTimeout = 10 * time.Second
)

type Options struct {
	Address      string
	LogLevel     string
	CookieSecure bool
	// TrustedProxies lists CIDRs (or single IPs) of reverse proxies whose
	// X-Forwarded-For is believed. Empty means the socket peer is the client.
	TrustedProxies []string
	Location       *time.Location
	// Metrics defaults to a fresh registry.
	Metrics *metrics.Metrics
	// LoginLimiter throttles login attempts per client IP. Defaults to
	// one attempt every five seconds with a burst of five.
	LoginLimiter *ratelimit.Store
	LimiterStats ratelimit.StatsStore
	// Health is probed by /healthz, typically a database ping.
	Health func(ctx context.Context) error
}

type Server struct {
	address      string
	echo         *echo.Echo
	svc          Services
	logger       logging.Logger
	metrics      *metrics.Metrics
	limiter      *ratelimit.Store
	limiterStats ratelimit.StatsStore
	health       func(ctx context.Context) error
	loc          *time.Location
	cookieSecure bool
	pages        *template.Template
}

func NewServer(l logging.Logger, svc Services, opts Options) *Server {
	s := &Server{
		address:      opts.Address,
		svc:          svc,
		logger:       l.With("module", "http_server"),
		metrics:      opts.Metrics,
		limiter:      opts.LoginLimiter,
		limiterStats: opts.LimiterStats,
		health:       opts.Health,
		loc:          opts.Location,
		cookieSecure: opts.CookieSecure,
		pages:        pageTemplates,
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.limiter == nil {
		s.limiter = ratelimit.NewStore(0.2, 5)
	}
	if s.loc == nil {
		s.loc = time.UTC
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	setLevel(e, opts.LogLevel)
	e.HTTPErrorHandler = s.errorHandler
	e.IPExtractor = s.ipExtractor(opts.TrustedProxies)

	e.Use(middleware.Recover())
	e.Use(s.accessLog)
	e.Use(s.metrics.Middleware(statusCode))
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "same-origin",
	}))

	s.echo = e
	s.routes()
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) routes() {
	e := s.echo

	e.GET("/healthz", s.healthz)
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	e.POST("/api/webhooks/payments", s.paymentWebhook)

	s.pageRoutes()

	api := e.Group("/api")

	login := ratelimit.Middleware(ratelimit.Options{
		Store:  s.limiter,
		Stats:  s.limiterStats,
		Logger: s.logger,
		OnDecision: func(c echo.Context, d ratelimit.Decision) {
			if !d.Allowed {
				s.metrics.LoginAttempt(loginRole(c), metrics.LoginLimited)
			}
		},
	})
	api.POST("/auth/login", s.loginSalon, login)
	api.POST("/auth/admin/login", s.loginAdmin, login)
	api.POST("/auth/logout", s.logout)
	api.GET("/auth/session", s.currentSession, s.requireSession)

	admin := api.Group("/admin", s.requireSession, s.requireAdmin)
	admin.GET("/salons", s.listSalons)
	admin.POST("/salons", s.createSalon)
	admin.GET("/salons/:id", s.getSalon)
	admin.PUT("/salons/:id/status", s.setSalonStatus)
	admin.POST("/salons/:id/key", s.rotateSalonKey)

	g := api.Group("", s.requireSession, s.requireSalon)

	g.GET("/customers", s.listCustomers)
	g.POST("/customers", s.createCustomer)
	g.GET("/customers/:id", s.getCustomer)
	g.PUT("/customers/:id", s.updateCustomer)
	g.DELETE("/customers/:id", s.deleteCustomer)

	g.GET("/staff", s.listStaff)
	g.POST("/staff", s.createStaff)
	g.GET("/staff/:id", s.getStaff)
	g.PUT("/staff/:id", s.updateStaff)
	g.DELETE("/staff/:id", s.deleteStaff)

	g.GET("/services", s.listServices)
	g.POST("/services", s.createService)
	g.GET("/services/:id", s.getService)
	g.PUT("/services/:id", s.updateService)
	g.DELETE("/services/:id", s.deleteService)

	g.GET("/appointments", s.listAppointments)
	g.POST("/appointments", s.createAppointment)
	g.GET("/appointments/:id", s.getAppointment)
	g.PUT("/appointments/:id/reschedule", s.rescheduleAppointment)
	g.PUT("/appointments/:id/status", s.setAppointmentStatus)

	g.GET("/invoices", s.listInvoices)
	g.POST("/invoices", s.createInvoice)
	g.GET("/invoices/:id", s.getInvoice)
	g.POST("/invoices/:id/void", s.voidInvoice)

	g.GET("/products", s.listProducts)
	g.GET("/products/low-stock", s.lowStock)
	g.POST("/products", s.createProduct)
	g.GET("/products/:id", s.getProduct)
	g.PUT("/products/:id", s.updateProduct)
	g.POST("/products/:id/purchase", s.purchaseStock)
	g.POST("/products/:id/adjust", s.adjustStock)
	g.GET("/products/:id/movements", s.stockMovements)

	g.GET("/attendance", s.listAttendance)
	g.PUT("/attendance", s.markAttendance)
	g.GET("/attendance/summary", s.attendanceSummary)
	g.POST("/attendance/lock", s.lockAttendance)

	g.GET("/subscription", s.getSubscription)
	g.POST("/subscription/orders", s.createSubscriptionOrder)
	g.POST("/subscription/verify", s.verifySubscription)
	g.GET("/subscription/payments", s.listSubscriptionPayments)

	g.GET("/reports/revenue", s.revenueReport)
	g.GET("/dashboard", s.dashboard)

	g.POST("/uploads", s.presignUpload)
	g.GET("/uploads/url", s.presignDownload)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) healthz(c echo.Context) error {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := s.health(ctx); err != nil {
			s.logger.Warn(ctx, "health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// accessLog writes one line per request once the response is known.
func (s *Server) accessLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		begin := time.Now()
		err := next(c)

		req := c.Request()
		status := c.Response().Status
		if err != nil {
			status, _ = statusFor(err)
		}
		s.logger.Info(req.Context(), "request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"duration", time.Since(begin),
			"remote_ip", c.RealIP(),
		)
		return err
	}
}

// ipExtractor decides what c.RealIP returns, which keys the login limiter.
// Forwarded headers are ignored unless the peer is a configured proxy.
func (s *Server) ipExtractor(trusted []string) echo.IPExtractor {
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, p := range trusted {
		ipNet, err := parseProxy(p)
		if err != nil {
			s.logger.Warn(context.Background(), "ignoring trusted proxy", "proxy", p, "error", err)
			continue
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	if len(opts) == 3 {
		return echo.ExtractIPDirect()
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func parseProxy(p string) (*net.IPNet, error) {
	if !strings.Contains(p, "/") {
		ip := net.ParseIP(p)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP %q", p)
		}
		bits := 128
		if ip.To4() != nil {
			ip, bits = ip.To4(), 32
		}
		return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
	}
	_, ipNet, err := net.ParseCIDR(p)
	return ipNet, err
}

// setLevel tunes echo's own logger, which only reports framework internals.
func setLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
	}
}
