package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/configuration"
)

const rateLimitPrefix = "portal:ratelimit"

type RateLimitConfig struct {
	RequestsPerPeriod int
	Period            time.Duration
	Store             limiter.Store
	// KeyFunc picks the bucket of a request; the client IP when nil.
	KeyFunc func(r *http.Request) string
}

func NewMemoryStore() limiter.Store {
	return memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          rateLimitPrefix,
		CleanUpInterval: time.Minute,
	})
}

func NewRedisStore(redisURL string) (limiter.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	store, err := sredis.NewStoreWithOptions(redis.NewClient(opts), limiter.StoreOptions{
		Prefix: rateLimitPrefix,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create redis rate limit store")
	}
	return store, nil
}

// NewRateLimitStore picks the store named by storage. A Redis store that
// cannot be reached degrades to memory with a warning.
func NewRateLimitStore(storage, redisURL string, logger logrus.FieldLogger) limiter.Store {
	if storage != "redis" {
		return NewMemoryStore()
	}
	store, err := NewRedisStore(redisURL)
	if err != nil {
		logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
		return NewMemoryStore()
	}
	return store
}

func clientKey(r *http.Request) string {
	if ip, ok := composables.UseIP(r.Context()); ok && ip != "" {
		return ip
	}
	return getRealIP(r, configuration.Use())
}

func newLimiter(cfg RateLimitConfig) *limiter.Limiter {
	period := cfg.Period
	if period <= 0 {
		period = time.Second
	}
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	return limiter.New(store, limiter.Rate{Period: period, Limit: int64(cfg.RequestsPerPeriod)})
}

// RateLimit applies one token bucket per client to every request.
func RateLimit(cfg RateLimitConfig) mux.MiddlewareFunc {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = clientKey
	}
	mw := stdlibmw.NewMiddleware(
		newLimiter(cfg),
		stdlibmw.WithKeyGetter(keyFunc),
		stdlibmw.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		}),
	)
	return mw.Handler
}

// LoginLimiter guards credential submissions per client.
type LoginLimiter struct {
	limiter *limiter.Limiter
}

func NewLoginLimiter(store limiter.Store, perMinute int) *LoginLimiter {
	if perMinute <= 0 {
		return &LoginLimiter{}
	}
	return &LoginLimiter{limiter: newLimiter(RateLimitConfig{
		RequestsPerPeriod: perMinute,
		Period:            time.Minute,
		Store:             store,
	})}
}

// Allow consumes one attempt for the client of r. It reports false once the
// client is over its budget, and sets Retry-After on w.
func (l *LoginLimiter) Allow(w http.ResponseWriter, r *http.Request) bool {
	if l == nil || l.limiter == nil {
		return true
	}
	res, err := l.limiter.Get(r.Context(), "login:"+clientKey(r))
	if err != nil {
		if logger, lerr := composables.TryUseLogger(r.Context()); lerr == nil {
			logger.WithError(err).Warn("login rate limiter unavailable")
		}
		return true
	}
	if res.Reached {
		retry := time.Until(time.Unix(res.Reset, 0))
		if retry < time.Second {
			retry = time.Second
		}
		w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())))
		return false
	}
	return true
}
