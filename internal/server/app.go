// Package server initializes and runs the salon application: it opens the
// database, applies migrations, wires the services, schedules the nightly
// jobs and serves the HTTP surface until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/logging"
	"github.com/ansuman15/salon-software-sub002/internal/server/config"
	"github.com/ansuman15/salon-software-sub002/internal/server/httpapi"
	"github.com/ansuman15/salon-software-sub002/internal/server/jobs"
	"github.com/ansuman15/salon-software-sub002/internal/server/metrics"
	"github.com/ansuman15/salon-software-sub002/internal/server/payments"
	"github.com/ansuman15/salon-software-sub002/internal/server/ratelimit"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
	"github.com/ansuman15/salon-software-sub002/internal/server/services"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const jobsStopTimeout = 30 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	loc     *time.Location
	metrics *metrics.Metrics
	redis   *redis.Client

	services     httpapi.Services
	revenue      *services.ReportService
	attendance   *services.AttendanceService
	loginLimiter *ratelimit.Store
	limiterStats ratelimit.StatsStore
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	if err := c.CheckSecrets(); err != nil {
		return nil, err
	}
	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "session cookies are signed with the development secret")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	subCfg, err := subscriptionConfig(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	gateway, err := newGateway(c)
	if err != nil {
		logger.Warn(ctx, "payment gateway disabled", "reason", err.Error())
	}

	app := &App{
		config:       c,
		logger:       logger,
		db:           db,
		loc:          loc,
		metrics:      metrics.New(),
		revenue:      services.NewReportService(db, rm, loc),
		attendance:   services.NewAttendanceService(db, rm, loc),
		loginLimiter: ratelimit.NewStore(c.LoginRateRPS, c.LoginRateBurst),
	}

	app.services = httpapi.Services{
		Sessions:      services.NewSessionService(db, rm, c),
		Salons:        services.NewSalonAdminService(db, rm),
		Customers:     services.NewCustomerService(db, rm),
		Staff:         services.NewStaffService(db, rm),
		Catalog:       services.NewCatalogService(db, rm),
		Appointments:  services.NewAppointmentService(db, rm),
		Billing:       services.NewBillingService(db, rm),
		Inventory:     services.NewInventoryService(db, rm),
		Attendance:    app.attendance,
		Subscriptions: services.NewSubscriptionService(db, rm, gateway, subCfg),
		Reports:       app.revenue,
		Media:         services.NewMediaService(c),
	}

	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr, Password: c.RedisPassword})
		app.limiterStats = ratelimit.NewRedisStatsStore(app.redis)
	}

	return app, nil
}

func subscriptionConfig(c *config.Config) (services.SubscriptionConfig, error) {
	monthly, err := decimal.NewFromString(c.PlanMonthlyPrice)
	if err != nil {
		return services.SubscriptionConfig{}, fmt.Errorf("monthly plan price %q: %w", c.PlanMonthlyPrice, err)
	}
	yearly, err := decimal.NewFromString(c.PlanYearlyPrice)
	if err != nil {
		return services.SubscriptionConfig{}, fmt.Errorf("yearly plan price %q: %w", c.PlanYearlyPrice, err)
	}
	return services.SubscriptionConfig{
		KeySecret:     c.PaymentKeySecret,
		WebhookSecret: c.PaymentWebhookSecret,
		MonthlyPrice:  monthly,
		YearlyPrice:   yearly,
	}, nil
}

// newGateway returns a nil Gateway when credentials are missing, which leaves
// checkout disabled while the rest of the app keeps working.
func newGateway(c *config.Config) (services.Gateway, error) {
	client, err := payments.New(payments.Config{
		BaseURL:   c.PaymentGatewayURL,
		KeyID:     c.PaymentKeyID,
		KeySecret: c.PaymentKeySecret,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startJobs() (*jobs.Runner, error) {
	runner := jobs.New(app.loc, app.logger.With("module", "jobs"), app.metrics)
	if err := runner.Add("revenue_rollup", app.config.RevenueCronSpec, app.revenue.AggregatePreviousDay); err != nil {
		return nil, err
	}
	if err := runner.Add("attendance_lock", app.config.AttendanceLockCronSpec, app.attendance.LockAll); err != nil {
		return nil, err
	}
	runner.Start()
	return runner, nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.logger, app.services, httpapi.Options{
		Address:        app.config.EndpointAddrHTTP,
		LogLevel:       app.config.LogLevel,
		CookieSecure:   app.config.CookieSecure,
		TrustedProxies: app.config.TrustedProxies,
		Location:       app.loc,
		Metrics:        app.metrics,
		LoginLimiter:   app.loginLimiter,
		LimiterStats:   app.limiterStats,
		Health:         app.db.PingContext,
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "timezone", app.loc.String())

	app.initSignalHandler(cancelFunc)

	runner, err := app.startJobs()
	if err != nil {
		app.logger.Error(ctx, "scheduling jobs", "error", err)
		cancelFunc()
	}

	app.loginLimiter.StartJanitor(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if runner != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), jobsStopTimeout)
		runner.Stop(stopCtx)
		cancel()
	}
	app.close()
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(context.Background(), "closing redis", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(context.Background(), "closing database", "error", err)
	}
}
