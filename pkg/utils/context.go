package utils

import (
	"context"

	"pitch-booking/internal/data/entity"
)

type contextKey string

const (
	VisitorIDKey contextKey = "visitor_id"
	SessionKey   contextKey = "session"
)

// GetVisitorIDFromContext returns the sid cookie value set by the Visitor middleware.
func GetVisitorIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(VisitorIDKey)
	if val == nil {
		return "", false
	}

	sid, ok := val.(string)
	return sid, ok && sid != ""
}

func SetVisitorContext(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, VisitorIDKey, sid)
}

// GetSessionFromContext returns the staff session set by RequireStaff
func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	val := ctx.Value(SessionKey)
	if val == nil {
		return nil, false
	}

	session, ok := val.(*entity.Session)
	return session, ok && session != nil
}

func SetSessionContext(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}
