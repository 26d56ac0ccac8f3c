package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/utils"
)

type contextKey string

const ViewerContextKey contextKey = "viewer"

// ViewerHeader carries the viewer's user id. Authentication itself is the
// job of an upstream collaborator; the engine only ever sees an explicit
// viewer id, never ambient session state.
const ViewerHeader = "X-Viewer-ID"

type MiddlewareHandler struct {
	Logger         *log.Logger
	allowedOrigins []string
}

// NewMiddlewareHandler takes the comma-separated CORS origin allowlist
// from config.
func NewMiddlewareHandler(logger *log.Logger, allowedOrigins string) *MiddlewareHandler {
	return &MiddlewareHandler{
		Logger:         logger,
		allowedOrigins: strings.Split(allowedOrigins, ","),
	}
}

// ResolveViewer parses the viewer header into the request context. A
// missing header is fine (anonymous request); a malformed one is rejected
// so handlers never see a half-parsed viewer id.
func (mh *MiddlewareHandler) ResolveViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		raw := r.Header.Get(ViewerHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		viewerID, err := uuid.Parse(raw)
		if err != nil {
			mh.Logger.Printf("Invalid viewer id %q: %v", raw, err)
			utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid viewer id"})
			return
		}

		ctx := context.WithValue(r.Context(), ViewerContextKey, viewerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (mh *MiddlewareHandler) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && !mh.isOriginAllowed(origin) {
			mh.Logger.Printf("Origin not allowed: %s", origin)
			utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"error": "Origin not allowed"})
			return
		}

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Viewer-ID")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		mh.Logger.Printf("Request: %s %s | Origin: %s",
			r.Method, r.URL.Path, origin)

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) isOriginAllowed(origin string) bool {
	for _, allowedOrigin := range mh.allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}

// GetViewerFromContext returns the resolved viewer id, if any.
func GetViewerFromContext(r *http.Request) (uuid.UUID, bool) {
	viewerID, ok := r.Context().Value(ViewerContextKey).(uuid.UUID)
	return viewerID, ok
}
