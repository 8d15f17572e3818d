package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/metrics"
	"github.com/fjod/go_storefront/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

const (
	SessionCookie = "sf_session"
	SessionHeader = "X-Session-ID"
)

type ctxKey string

const sessionIDKey ctxKey = "session_id"

// SessionMiddleware resolves the visitor session from the header or cookie and
// mints a new id when neither carries a valid one.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = c.Value
			}
		}
		if !session.ValidID(id) {
			id = session.NewID()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		w.Header().Set(SessionHeader, id)
		ctx := context.WithValue(r.Context(), sessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestIDMiddleware echoes the chi request id back to the caller
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestID := middleware.GetReqID(r.Context()); requestID != "" {
			w.Header().Set(middleware.RequestIDHeader, requestID)
		}
		next.ServeHTTP(w, r)
	})
}

// MetricsMiddleware counts requests by route pattern, not raw path.
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(route, r.Method, status, float64(time.Since(start).Microseconds())/1000)
		})
	}
}

// SessionLimiter hands out one token bucket per session. Buckets idle for
// longer than ttl are dropped on the next sweep.
type SessionLimiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewSessionLimiter(limit rate.Limit, burst int, ttl time.Duration) *SessionLimiter {
	return &SessionLimiter{
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (l *SessionLimiter) Allow(sessionID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.ttl {
		l.sweep(now)
	}

	b, ok := l.buckets[sessionID]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[sessionID] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *SessionLimiter) sweep(now time.Time) {
	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.ttl {
			delete(l.buckets, id)
		}
	}
	l.lastSweep = now
}

func (l *SessionLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// RateLimitMiddleware rejects a session's requests once its bucket is empty.
// It must run after SessionMiddleware.
func RateLimitMiddleware(l *SessionLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l != nil && !l.Allow(getSessionID(r.Context())) {
				respondError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "too many checkout requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
