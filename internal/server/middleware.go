package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs every /api request as one line of the form
// "POST /api/simulate 200 in 3ms :: {...}", cut to limit runes.
func requestLogger(logger *slog.Logger, limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			body := &headBuffer{max: previewCapture}
			if strings.HasPrefix(path, "/api") {
				ww.Tee(body)
			}

			next.ServeHTTP(ww, r)

			if !strings.HasPrefix(path, "/api") {
				return
			}

			duration := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			line := fmt.Sprintf("%s %s %d in %dms", r.Method, path, status, duration.Milliseconds())
			if preview := body.preview(); preview != "" {
				line += " :: " + preview
			}

			logger.Info(truncate(line, limit),
				slog.String("method", r.Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Duration("duration", duration),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// recoverJSON turns a panic into a 500 JSON error response.
func recoverJSON(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic", slog.Any("panic", rec), slog.String("path", r.URL.Path))
					writeError(w, http.StatusInternalServerError, "Internal Server Error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// previewCapture bounds how much of a response body is kept for the log line.
const previewCapture = 4 << 10

// headBuffer keeps the first max bytes written to it and drops the rest.
type headBuffer struct {
	buf       bytes.Buffer
	max       int
	truncated bool
}

func (h *headBuffer) Write(p []byte) (int, error) {
	if room := h.max - h.buf.Len(); room > 0 {
		if len(p) > room {
			h.buf.Write(p[:room])
			h.truncated = true
		} else {
			h.buf.Write(p)
		}
	} else if len(p) > 0 {
		h.truncated = true
	}
	return len(p), nil
}

// preview returns the captured body as compact JSON. A cut body cannot be
// validated, so its insignificant whitespace is squeezed instead.
func (h *headBuffer) preview() string {
	if h.truncated {
		return squeezeJSON(h.buf.Bytes())
	}
	return compactJSON(h.buf.Bytes())
}

// squeezeJSON drops whitespace outside of string literals.
func squeezeJSON(b []byte) string {
	var out strings.Builder
	inString, escaped := false, false
	for _, c := range b {
		switch {
		case inString:
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == ' ', c == '\n', c == '\r', c == '\t':
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

func compactJSON(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return ""
	}
	return buf.String()
}

// truncate cuts s to limit runes, replacing the last kept rune with "…".
// A limit of 0 disables truncation.
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
