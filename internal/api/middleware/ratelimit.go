package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/api/shared"
)

// staleAfter is how long a client limiter may sit idle before the
// janitor reclaims it.
const staleAfter = 10 * time.Minute

// RateLimiter throttles requests per client IP using a token bucket.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter

	rps   rate.Limit
	burst int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second with
// the given burst per client IP.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// Cleanup removes limiters for clients not seen recently.
func (rl *RateLimiter) Cleanup() {
	cutoff := time.Now().Add(-staleAfter)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, cl := range rl.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// StartJanitor sweeps stale client entries every minute until the
// returned stop function is called.
func (rl *RateLimiter) StartJanitor() (stop func()) {
	done := make(chan struct{})
	t := time.NewTicker(time.Minute)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				rl.Cleanup()
			}
		}
	}()
	return func() { close(done) }
}

// Handle rejects requests exceeding the per-client rate with 429.
func (rl *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.limiterFor(ip).Allow() {
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
