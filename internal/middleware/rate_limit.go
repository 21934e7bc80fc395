package middleware

import (
	"net/http"
	"sync"
	"time"

	"asset-vault-server/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: time.Now()})

	return limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value interface{}) bool {
			client := value.(*client)
			if time.Since(client.lastSeen) > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// UploadRateLimit 上传接口按 IP 限流，参数取自 rate_limit 配置，修改后即时生效。
func UploadRateLimit() gin.HandlerFunc {
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		cfg := config.Get().RateLimit
		if !cfg.Enabled {
			c.Next()
			return
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(cfg.UploadRPS), cfg.UploadBurst)
		})

		l := limiter.getLimiter(c.ClientIP())
		if l.Limit() != rate.Limit(cfg.UploadRPS) {
			l.SetLimit(rate.Limit(cfg.UploadRPS))
		}
		if l.Burst() != cfg.UploadBurst {
			l.SetBurst(cfg.UploadBurst)
		}

		if !l.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "上传过于频繁，请稍后再试"})
			c.Abort()
			return
		}
		c.Next()
	}
}
