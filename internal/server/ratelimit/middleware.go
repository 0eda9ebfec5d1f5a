package ratelimit

import (
	"strconv"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/logging"
	"github.com/labstack/echo/v4"
)

type KeyFunc func(c echo.Context) string

type Options struct {
	Store *Store
	// Stats is optional; recording failures are logged and otherwise ignored.
	Stats  StatsStore
	KeyFn  KeyFunc
	Logger logging.Logger
	// OnDecision observes every decision, e.g. for metrics.
	OnDecision func(c echo.Context, d Decision)
}

// Middleware rejects requests over the limit with common.ErrRateLimited and a
// Retry-After header; the HTTP error handler turns that into a 429.
func Middleware(opts Options) echo.MiddlewareFunc {
	if opts.KeyFn == nil {
		opts.KeyFn = func(c echo.Context) string { return c.RealIP() }
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := opts.KeyFn(c)
			dec := opts.Store.Allow(key)

			if opts.OnDecision != nil {
				opts.OnDecision(c, dec)
			}
			if opts.Stats != nil {
				req := c.Request()
				if err := opts.Stats.Record(req.Context(), StatsEvent{
					Key:     key,
					Allowed: dec.Allowed,
					Method:  req.Method,
					Path:    c.Path(),
					At:      time.Now(),
				}); err != nil {
					opts.Logger.Warn(req.Context(), "rate limit stats failed", "error", err)
				}
			}

			if !dec.Allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(dec.RetryAfter/time.Second)))
				return common.ErrRateLimited
			}
			return next(c)
		}
	}
}
