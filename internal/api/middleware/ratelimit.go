package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kinolab/cinema-api/internal/api/shared"
	"github.com/kinolab/cinema-api/internal/config"
)

// rateLimitClient tracks the limiter and last activity for one client IP.
type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a per-client-IP token bucket to all requests.
type RateLimitMiddleware struct {
	cfg config.RateLimitConfig

	mu      sync.Mutex
	clients map[string]*rateLimitClient
}

// NewRateLimitMiddleware creates a new RateLimitMiddleware with the given
// settings and starts the background sweep that drops idle client buckets.
func NewRateLimitMiddleware(cfg config.RateLimitConfig) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		cfg:     cfg,
		clients: make(map[string]*rateLimitClient),
	}

	if cfg.Enabled {
		go m.sweepIdleClients()
	}

	return m
}

// sweepIdleClients periodically deletes buckets for IPs that have not been
// seen for a while, keeping the client map bounded.
func (m *RateLimitMiddleware) sweepIdleClients() {
	for {
		time.Sleep(time.Minute)

		m.mu.Lock()
		for ip, client := range m.clients {
			if time.Since(client.lastSeen) > 3*time.Minute {
				delete(m.clients, ip)
			}
		}
		m.mu.Unlock()
	}
}

// Limit rejects requests that exceed the configured per-IP rate with
// 429 Too Many Requests. When rate limiting is disabled it passes every
// request through untouched.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			// No port present; RemoteAddr is already just the host
			ip = r.RemoteAddr
		}

		m.mu.Lock()
		client, found := m.clients[ip]
		if !found {
			client = &rateLimitClient{
				limiter: rate.NewLimiter(rate.Limit(m.cfg.RPS), m.cfg.Burst),
			}
			m.clients[ip] = client
		}
		client.lastSeen = time.Now()
		allowed := client.limiter.Allow()
		m.mu.Unlock()

		if !allowed {
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
