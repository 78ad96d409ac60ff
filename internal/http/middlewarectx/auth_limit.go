package middlewarectx

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/adaso/internal/http/response"
	"github.com/magabrotheeeer/adaso/internal/lib/sl"
	"github.com/magabrotheeeer/adaso/internal/models"
)

const (
	authLimitPrefix  = "auth:rl:"
	authLimitTimeout = 500 * time.Millisecond
)

// fixedWindowScript увеличивает счетчик и при первом обращении в окне ставит TTL.
const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

// RedisEvaler выполняет Lua скрипты в Redis.
type RedisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// AuthRateLimit ограничивает число запросов с одного IP до max за window.
// Счетчики хранятся в Redis. При недоступности Redis запросы пропускаются.
// nil client отключает ограничение.
func AuthRateLimit(client RedisEvaler, log *slog.Logger, max int, window time.Duration) func(http.Handler) http.Handler {
	if max <= 0 {
		max = 10
	}
	seconds := int(window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	return func(next http.Handler) http.Handler {
		if client == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), authLimitTimeout)
			defer cancel()

			key := authLimitPrefix + clientIP(r)
			count, err := client.Eval(ctx, fixedWindowScript, []string{key}, seconds).Int()
			if err != nil {
				log.Warn("auth rate limiter unavailable", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if count > max {
				log.Warn("auth rate limit exceeded", slog.String("key", key), slog.Int("count", count))
				response.WriteError(w, r, models.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP возвращает IP из RemoteAddr. Заголовки прокси учитывает middleware.RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
