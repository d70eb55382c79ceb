package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/oksasatya/go-blog-api/pkg/response"
)

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		return "rl:path:" + path + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUser limits authenticated callers by id and everyone else by IP.
func KeyByUser() KeyFunc {
	return func(c *gin.Context) string {
		if u := CurrentUser(c); u != nil {
			return "rl:user:" + strconv.FormatInt(u.ID, 10)
		}
		return "rl:user:anon:ip:" + ipFromCtx(c)
	}
}

// INCR and set the window expiry on first hit, atomically.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// Limiter decides whether the request under key is admitted. remaining and
// reset feed the X-RateLimit headers.
type Limiter interface {
	Take(c *gin.Context, key string) (allowed bool, remaining int, reset time.Duration, err error)
}

// RedisLimiter is a fixed-window counter shared by every replica.
type RedisLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, max: max, window: window}
}

func (l *RedisLimiter) Take(c *gin.Context, key string) (bool, int, time.Duration, error) {
	ctx := c.Request.Context()
	count, err := incrExpireScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int()
	if err != nil {
		return true, l.max, 0, err
	}
	ttl, _ := l.rdb.PTTL(ctx, key).Result()
	if ttl < 0 {
		ttl = 0
	}
	remaining := l.max - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.max, remaining, ttl, nil
}

// LocalLimiter is a per-process token bucket per key, used when Redis is not
// configured. Buckets that have refilled are dropped once per window; a full
// bucket behaves exactly like a new one.
type LocalLimiter struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	buckets   map[string]*rate.Limiter
	lastSweep time.Time
	now       func() time.Time
}

func NewLocalLimiter(max int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{max: max, window: window, buckets: map[string]*rate.Limiter{}, now: time.Now}
}

func (l *LocalLimiter) bucket(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Every(l.window/time.Duration(l.max)), l.max)
		l.buckets[key] = b
	}
	return b
}

// sweep runs with mu held.
func (l *LocalLimiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if b.TokensAt(now) >= float64(l.max) {
			delete(l.buckets, k)
		}
	}
	l.lastSweep = now
}

func (l *LocalLimiter) Take(_ *gin.Context, key string) (bool, int, time.Duration, error) {
	now := l.now()
	b := l.bucket(key, now)
	r := b.ReserveN(now, 1)
	if !r.OK() {
		return false, 0, l.window, nil
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, 0, d, nil
	}
	remaining := int(b.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, 0, nil
}

// RateLimit picks the Redis limiter when rdb is set and the local one
// otherwise. Redis errors fail open.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	var l Limiter
	if rdb != nil {
		l = NewRedisLimiter(rdb, max, window)
	} else {
		l = NewLocalLimiter(max, window)
	}
	return WithLimiter(l, max, keyFn, allow)
}

func WithLimiter(l Limiter, max int, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allow != nil && allow(c) {
			c.Next()
			return
		}
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		ok, remaining, reset, err := l.Take(c, keyFn(c))
		if err != nil {
			c.Next()
			return
		}
		resetSec := int((reset + time.Second - 1) / time.Second)
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if !ok {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
