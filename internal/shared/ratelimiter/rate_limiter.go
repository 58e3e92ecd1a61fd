package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiterは、クライアント単位の固定ウィンドウ方式でリクエスト頻度を制限します。
type Limiter struct {
	mu       sync.Mutex
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか
	windows  map[string]*window
	now      func() time.Time
}

// windowは1クライアント分の固定ウィンドウカウンタです。
type window struct {
	count int
	start time.Time
}

// NewLimiterは新しいLimiterのインスタンスを生成します。
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allowは指定キーのリクエストが上限内かを判定し、カウントを進めます。
// interval を過ぎたウィンドウはリセットされます。
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[key]
	if w == nil || now.Sub(w.start) >= l.interval {
		w = &window{start: now}
		l.windows[key] = w
	}

	w.count++
	return w.count <= l.limit
}

// Middlewareは、クライアントIP単位でLimiterを適用するGinミドルウェアを返します。
// 上限超過時は429を返します。
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests, please try again later.",
			})
			return
		}
		c.Next()
	}
}
