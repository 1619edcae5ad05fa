package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

type contextKey string

const sessionKey contextKey = "session"

// WithSession returns a context carrying the authenticated session.
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the authenticated session from the context, if present.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	return s, ok && s != nil
}

// RequireAuth returns a wrapper that validates the Bearer token and stores the session in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			session, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("token rejected", "error", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(WithSession(r.Context(), session)))
		}
	}
}

// RequireCapability responds 403 unless the session's role grants c. It must run after RequireAuth.
func RequireCapability(c domain.Capability, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
				return
			}
			if !session.Role.Can(c) {
				logger.Warn("capability denied", "user_id", session.UserID, "role", session.Role, "capability", c)
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "no tiene permisos para esta acción")
				return
			}
			next(w, r)
		}
	}
}

// Guard combines RequireAuth and RequireCapability.
func Guard(verifier domain.TokenVerifier, c domain.Capability, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	auth := RequireAuth(verifier, logger)
	capability := RequireCapability(c, logger)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return auth(capability(next))
	}
}
