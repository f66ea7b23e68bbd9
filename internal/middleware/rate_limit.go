package middleware

import (
	"net/http"
	"sync"

	"go-hrdash/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errTooManyRequests = apperror.New(apperror.CodeRateLimited, "Too many requests", http.StatusTooManyRequests)

type ClientRateLimiter struct {
	clients map[string]*rate.Limiter
	mu      sync.Mutex
	r       rate.Limit // requests per second
	b       int        // burst
}

func NewClientRateLimiter(r rate.Limit, b int) *ClientRateLimiter {
	return &ClientRateLimiter{
		clients: make(map[string]*rate.Limiter),
		r:       r,
		b:       b,
	}
}

func (l *ClientRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.clients[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.clients[key] = limiter
	}

	return limiter
}

// RateLimitByClient throttles per authenticated user, or per IP when the
// request is anonymous. r = requests per second, b = burst.
func RateLimitByClient(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewClientRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(clientKey(c)).Allow() {
			abortWith(c, errTooManyRequests)
			return
		}
		c.Next()
	}
}
