package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/neuronav-backend-go/pkg/response"
)

// RateLimiter allows each client IP at most limit requests per sliding window
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	limit   int
	window  time.Duration
	now     func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewRateLimiter starts a limiter whose idle clients are swept once per window.
// Call Stop to end the sweeper.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop ends the sweeper goroutine
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for ip, hits := range rl.clients {
				if hits = rl.recent(hits, now); len(hits) == 0 {
					delete(rl.clients, ip)
				} else {
					rl.clients[ip] = hits
				}
			}
			rl.mu.Unlock()
		}
	}
}

// recent drops hits that fell out of the window; hits are in time order
func (rl *RateLimiter) recent(hits []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(hits) && now.Sub(hits[i]) >= rl.window {
		i++
	}
	return hits[i:]
}

// Allow records a request from ip. When the client is over its limit it
// returns false and how long until the oldest request leaves the window.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	hits := rl.recent(rl.clients[ip], now)
	if len(hits) >= rl.limit {
		rl.clients[ip] = hits
		return false, rl.window - now.Sub(hits[0])
	}
	rl.clients[ip] = append(hits, now)
	return true, 0
}

// RateLimit rejects over-limit clients with 429 and a Retry-After header
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := limiter.Allow(c.ClientIP())
		if !ok {
			secs := int((wait + time.Second - 1) / time.Second)
			c.Header("Retry-After", strconv.Itoa(secs))
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
