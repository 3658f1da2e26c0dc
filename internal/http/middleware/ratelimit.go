package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/clearslot/appointments/pkg/clock"
)

// RateLimiter enforces a per-IP request rate by virtual scheduling: each
// client carries a theoretical arrival time instead of a token count, so
// admitting a request is one comparison and one add under the lock.
type RateLimiter struct {
	interval time.Duration // spacing between sustained requests
	headroom time.Duration // extra lead granted by the burst allowance
	clock    clock.Clock

	mu       sync.Mutex
	visitors map[string]time.Time // ip -> theoretical arrival time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows rate requests/sec per IP with the given burst. Idle
// clients are swept every sweepEvery; call Stop to end the sweeper when the
// server shuts down.
func NewRateLimiter(rate float64, burst int, sweepEvery time.Duration) *RateLimiter {
	return newRateLimiterWithClock(rate, burst, sweepEvery, clock.Real{})
}

func newRateLimiterWithClock(rate float64, burst int, sweepEvery time.Duration, c clock.Clock) *RateLimiter {
	if rate <= 0 {
		rate = 1
	}
	if burst < 1 {
		burst = 1
	}
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}
	interval := time.Duration(float64(time.Second) / rate)
	rl := &RateLimiter{
		interval: interval,
		headroom: time.Duration(burst-1) * interval,
		clock:    c,
		visitors: make(map[string]time.Time),
		stop:     make(chan struct{}),
	}
	go rl.sweepLoop(sweepEvery)
	return rl
}

// Allow reports whether a request from ip fits within the limit.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	tat, ok := rl.visitors[ip]
	if !ok || tat.Before(now) {
		tat = now
	}
	if tat.Sub(now) > rl.headroom {
		return false
	}
	rl.visitors[ip] = tat.Add(rl.interval)
	return true
}

// Stop ends the background sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops clients whose budget has fully refilled; their entry carries
// no more information than a missing one.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	for ip, tat := range rl.visitors {
		if tat.Before(now) {
			delete(rl.visitors, ip)
		}
	}
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// Prefer X-Real-Ip set by chi's RealIP middleware.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !rl.Allow(ip) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
