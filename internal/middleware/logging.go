package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Varun5711/contactkeeper/internal/enrichment"
	"github.com/Varun5711/contactkeeper/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// RequestLogger logs one line per request. Bodies and headers are never
// logged, so tokens and passwords stay out of the log.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			ua := enrichment.ParseUserAgent(r.UserAgent())
			line := "%s %s %d %dB %s ip=%s client=%s"
			args := []interface{}{r.Method, r.URL.Path, rec.status, rec.bytes, time.Since(start), getClientIP(r), ua}

			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error(line, args...)
			case rec.status >= http.StatusBadRequest:
				log.Warn(line, args...)
			default:
				log.Info(line, args...)
			}
		})
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if host == "::1" {
		return "127.0.0.1"
	}
	return host
}
