package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jaekwang-park/todo-crud/internal/http/handler"
)

type recoveryWriter struct {
	http.ResponseWriter
	headerWritten bool
}

func (rw *recoveryWriter) WriteHeader(code int) {
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recoveryWriter) Write(b []byte) (int, error) {
	rw.headerWritten = true
	return rw.ResponseWriter.Write(b)
}

func (rw *recoveryWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Recovery turns a handler panic into the generic 500 error reply. When the
// handler already started its response the status cannot change, so the
// panic is only logged.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &recoveryWriter{ResponseWriter: w}

			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"error", rec,
						"method", r.Method,
						"uri", r.URL.RequestURI(),
						"response_started", rw.headerWritten,
						"stack", string(debug.Stack()),
					)

					if rw.headerWritten {
						return
					}
					handler.WriteInternalError(rw)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// Chain wraps h with access logging outside panic recovery, so a recovered
// panic is still logged as a 500 request.
func Chain(logger *slog.Logger, h http.Handler) http.Handler {
	return Logging(logger)(Recovery(logger)(h))
}
