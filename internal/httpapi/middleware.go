package httpapi

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const maxLoggedResponseBytes = 512

type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	logBody      bytes.Buffer
	truncated    bool
	maxLogBytes  int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(payload []byte) (int, error) {
	written, err := r.ResponseWriter.Write(payload)
	if written > 0 {
		r.bytesWritten += written
		remaining := r.maxLogBytes - r.logBody.Len()
		chunk := payload[:written]
		if len(chunk) > remaining {
			chunk = chunk[:max(remaining, 0)]
			r.truncated = true
		}
		r.logBody.Write(chunk)
	}
	return written, err
}

func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			maxLogBytes:    maxLoggedResponseBytes,
		}

		start := time.Now()
		next.ServeHTTP(recorder, r)
		duration := time.Since(start).Round(time.Microsecond)

		if recorder.statusCode >= http.StatusBadRequest {
			body := recorder.logBody.String()
			if recorder.truncated {
				body += "..."
			}
			log.Printf("request_id=%s method=%s path=%s status=%d bytes=%d duration=%s body=%q",
				requestID, r.Method, r.URL.Path, recorder.statusCode, recorder.bytesWritten, duration, body)
			return
		}

		log.Printf("request_id=%s method=%s path=%s status=%d bytes=%d duration=%s",
			requestID, r.Method, r.URL.Path, recorder.statusCode, recorder.bytesWritten, duration)
	})
}
