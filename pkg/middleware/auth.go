package middleware

import (
	"context"
	"net/http"
	"strings"

	"pitch-booking/internal/data/entity"
	"pitch-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VisitorCookie names the cookie that keys all per-visitor state.
const VisitorCookie = "sid"

// SessionSource resolves the staff session of a visitor, nil when anonymous.
type SessionSource interface {
	Current(ctx context.Context, sid string) (*entity.Session, error)
}

// Visitor makes sure every request carries a visitor id, issuing a fresh one when
// the cookie is missing or malformed.
func Visitor(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(VisitorCookie); err == nil {
				if _, perr := uuid.Parse(c.Value); perr == nil {
					sid = c.Value
				}
			}

			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(utils.SetVisitorContext(r.Context(), sid)))
		})
	}
}

// RequireStaff lets signed in admins and managers through and puts their session
// into the context. Browsers asking for HTML are sent to the login page.
func RequireStaff(sessions SessionSource, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := utils.GetVisitorIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			session, err := sessions.Current(r.Context(), sid)
			if err != nil {
				logger.Error("Failed to resolve session", zap.Error(err), zap.String("visitor_id", sid))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if !session.IsStaff() {
				if wantsHTML(r) {
					http.Redirect(w, r, "/login", http.StatusSeeOther)
					return
				}
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetSessionContext(r.Context(), session)))
		})
	}
}

// RequireAdmin must run after RequireStaff.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := utils.GetSessionFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !session.IsAdmin() {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", session.User.ID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
