package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"compliance-hub-backend/pkg/config"
)

const callerContextKey ContextKey = "caller"

// callerCarrier is installed by Logger before auth runs and filled in by
// AuthMiddleware once the caller is resolved. Context values set deeper in
// the chain never propagate back up, so the log line needs a mutable slot.
type callerCarrier struct {
	email string
}

var (
	requestLogger *logrus.Logger
	loggerOnce    sync.Once
)

// RequestLogger returns the shared logrus logger, configured once: JSON in
// production, colored text elsewhere.
func RequestLogger(cfg *config.Config) *logrus.Logger {
	loggerOnce.Do(func() {
		requestLogger = logrus.New()
		if cfg.IsProduction() {
			requestLogger.SetFormatter(&logrus.JSONFormatter{})
			requestLogger.SetLevel(logrus.InfoLevel)
		} else {
			requestLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			requestLogger.SetLevel(logrus.DebugLevel)
		}
		if cfg.Debug {
			requestLogger.SetLevel(logrus.DebugLevel)
		}
	})
	return requestLogger
}

// Logger logs one line per request: method, path, status, duration, caller.
func Logger(cfg *config.Config) func(http.Handler) http.Handler {
	log := RequestLogger(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			carrier := &callerCarrier{}
			r = r.WithContext(context.WithValue(r.Context(), callerContextKey, carrier))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			caller := "anonymous"
			if carrier.email != "" {
				caller = carrier.email
			}

			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start).String(),
				"caller":   caller,
				"ip":       getClientIP(r),
			}).Info("request completed")
		})
	}
}

// getClientIP resolves the client address behind proxies.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
