package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// loginRateWindow matches five attempts per fifteen minutes per client.
const (
	loginRateBurst  = 5
	loginRateWindow = 15 * time.Minute
)

// ipLimiter keeps one token bucket per client address.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    limit,
		burst:    burst,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if cl, ok := l.limiters[ip]; ok {
		cl.lastSeen = now
		return cl.limiter
	}

	// Drop buckets idle for over an hour so the map stays bounded.
	for ip, cl := range l.limiters {
		if now.Sub(cl.lastSeen) > time.Hour {
			delete(l.limiters, ip)
		}
	}

	cl := &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst), lastSeen: now}
	l.limiters[ip] = cl
	return cl.limiter
}

// LoginRateLimit throttles credential guessing per client IP.
func LoginRateLimit() gin.HandlerFunc {
	limiter := newIPLimiter(rate.Every(loginRateWindow/loginRateBurst), loginRateBurst)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
