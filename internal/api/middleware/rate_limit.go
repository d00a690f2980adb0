package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

// Limiter счетчик запросов с фиксированным окном
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RateLimit ограничивает частоту запросов на вызывающего
// При недоступности хранилища счетчиков запрос пропускается
func RateLimit(limiter Limiter, limit int, window time.Duration, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r)

			allowed, err := limiter.Allow(r.Context(), key, limit, window)
			if err != nil {
				logger.Warn("RateLimit: limiter unavailable, request allowed: key=%s, error=%v", key, err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("RateLimit: limit exceeded: key=%s, path=%s", key, r.URL.Path)
				handlers.RespondTooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != "" {
		return "user:" + userID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
