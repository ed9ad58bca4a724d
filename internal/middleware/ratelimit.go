package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const rateLimitMessage = "Too many requests, please try again later."

// RateLimiter is a per-client token bucket. A client may burst up to
// Requests calls, then refills at Requests per Window.
//
// Buckets live in a go-cache keyed by "policy:ip" and are dropped after a
// window of inactivity, at which point they would be full again anyway.
type RateLimiter struct {
	policy string
	limit  rate.Limit
	burst  int
	window time.Duration

	mu      sync.Mutex
	buckets *gocache.Cache
	logger  *slog.Logger
	now     func() time.Time
}

// NewRateLimiter builds a limiter for one policy ("api", "login", "contact").
func NewRateLimiter(policy string, requests int, window time.Duration, logger *slog.Logger) *RateLimiter {
	if requests < 1 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		policy:  policy,
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   requests,
		window:  window,
		buckets: gocache.New(window, window),
		logger:  logger,
		now:     time.Now,
	}
}

// Handler rejects requests over the limit with 429 and a Retry-After header.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		wait, ok := l.allow(ip)
		if !ok {
			l.logger.Warn("rate limit exceeded",
				slog.String("policy", l.policy),
				slog.String("ip", ip),
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			writeError(w, http.StatusTooManyRequests, rateLimitMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow takes a token for ip. When none is available it reports how long
// until the next one.
func (l *RateLimiter) allow(ip string) (time.Duration, bool) {
	now := l.now()
	res := l.bucket(ip).ReserveN(now, 1)
	if !res.OK() {
		return l.window, false
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return delay, false
	}
	return 0, true
}

func (l *RateLimiter) bucket(ip string) *rate.Limiter {
	key := l.policy + ":" + ip

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.buckets.Get(key); ok {
		lim := v.(*rate.Limiter)
		l.buckets.SetDefault(key, lim)
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.buckets.SetDefault(key, lim)
	return lim
}

// clientIP reads RemoteAddr. Forwarded headers are never consulted here;
// when the server runs behind a trusted proxy, chi's RealIP stage has
// already rewritten RemoteAddr from them.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
