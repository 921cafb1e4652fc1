package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ratelimit"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// clientIP возвращает адрес клиента.
// X-Forwarded-For учитывается только за доверенным прокси и только если первый адрес валиден.
func clientIP(r *http.Request, trustForwardedFor bool) string {
	if trustForwardedFor {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first := strings.TrimSpace(strings.Split(fwd, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				return ip.String()
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit ограничивает число запросов с одного IP.
// При ошибке лимитера запрос пропускается. m может быть nil.
func RateLimit(limiter ratelimit.Limiter, trustForwardedFor bool, m *metrics.Metrics, serviceName string, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustForwardedFor)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("RateLimit: limiter failed for ip=%s: %v", ip, err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				route := routeTemplate(r)
				if m != nil {
					m.RateLimitedTotal.WithLabelValues(serviceName, route).Inc()
				}
				logger.Warn("RateLimit: request rejected: ip=%s, route=%s", ip, route)
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
