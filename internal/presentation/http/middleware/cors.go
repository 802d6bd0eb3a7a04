package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/viewtouch/settle-api/internal/config"
)

var (
	// terminal front ends served from the store network during development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
	}
	defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultHeaders = []string{
		"Accept",
		"Authorization",
		"Content-Type",
		"Origin",
		"X-Request-ID",
	}
	// headers terminals must always be able to send or read
	requiredHeaders = []string{IdempotencyKeyHeader}
	exposedHeaders  = []string{
		"Content-Length",
		"Content-Type",
		"Content-Disposition",
		"X-Request-ID",
		"X-Idempotency-Replayed",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"Retry-After",
	}
)

// CORSMiddleware creates a CORS middleware for the terminal front ends
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	headers := orDefault(cfg.AllowedHeaders, defaultHeaders)
	for _, h := range requiredHeaders {
		headers = appendMissing(headers, h)
	}

	return cors.New(cors.Config{
		AllowOrigins:     orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:     orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:     headers,
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return append([]string(nil), fallback...)
	}
	return append([]string(nil), values...)
}

func appendMissing(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
