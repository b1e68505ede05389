package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const requestIDKey contextKey = "requestId"

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// logMiddleware tags every request with a uuid and logs it on the way
// in and out.
func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, id)

		entry := log.WithFields(log.Fields{
			"requestId":  id,
			"method":     r.Method,
			"url":        r.URL.Path,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		})
		entry.Info("got a new request")

		start := time.Now()
		h.ServeHTTP(w, r.WithContext(ctx))
		entry.WithField("duration", time.Since(start).String()).Info("request handled")
	})
}
