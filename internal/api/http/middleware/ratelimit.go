package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/fps-platform/fps-backend/internal/api/http/response"
	"github.com/fps-platform/fps-backend/internal/logger"
)

const limiterTTL = 10 * time.Minute

// RateLimit throttles the credential endpoints per client address. Those
// routes run before authentication, so the remote IP is the only usable key.
type RateLimit struct {
	limit  rate.Limit
	burst  int
	logger *logger.Logger

	mu       sync.Mutex
	limiters map[string]*clientLimiter
	stopCh   chan struct{}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimit creates a rate limiter allowing perMinute requests with the
// given burst per client. A background goroutine evicts idle clients; call
// Stop to end it.
func NewRateLimit(perMinute int, burst int, logger *logger.Logger) *RateLimit {
	rl := &RateLimit{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		logger:   logger,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop ends the background cleanup goroutine.
func (rl *RateLimit) Stop() {
	close(rl.stopCh)
}

// Handler wraps next with the per-client limit.
func (rl *RateLimit) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)

		if !rl.limiterFor(client).Allow() {
			rl.logger.Info("rate limit exceeded",
				"client", client,
				"path", r.URL.Path)
			response.Error(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimit) limiterFor(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cl, ok := rl.limiters[client]; ok {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters[client] = &clientLimiter{limiter: limiter, lastAccess: time.Now()}
	return limiter
}

func (rl *RateLimit) cleanupLoop() {
	ticker := time.NewTicker(limiterTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimit) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for client, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > limiterTTL {
			delete(rl.limiters, client)
		}
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
