package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/request"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

type SessionEventType string

const (
	SessionRestored    SessionEventType = "restored"
	SessionLoggedIn    SessionEventType = "logged_in"
	SessionLoggedOut   SessionEventType = "logged_out"
	SessionInvalidated SessionEventType = "invalidated"
)

type SessionEvent struct {
	Type      SessionEventType
	VisitorID string
	Role      entity.UserRole
}

// SessionService is the single source of truth for who is signed in on a visitor.
type SessionService interface {
	Restore(ctx context.Context, sid string) (*entity.Session, error)
	Current(ctx context.Context, sid string) (*entity.Session, error)
	Login(ctx context.Context, sid string, req *request.LoginRequest) (*entity.Session, error)
	Logout(ctx context.Context, sid string) error
	Subscribe(fn func(SessionEvent))
	Sweep(idle time.Duration) int
}

type sessionState struct {
	mu       sync.Mutex
	restored bool
	session  *entity.Session
}

type sessionService struct {
	repo *repository.Repository
	live *visitorStore[sessionState]
	log  *zap.Logger

	subMu       sync.RWMutex
	subscribers []func(SessionEvent)
}

func NewSessionService(repo *repository.Repository, log *zap.Logger) SessionService {
	return &sessionService{
		repo: repo,
		live: newVisitorStore(func() *sessionState { return &sessionState{} }),
		log:  log.With(zap.String("service", "session")),
	}
}

func (s *sessionService) Subscribe(fn func(SessionEvent)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *sessionService) publish(ev SessionEvent) {
	s.subMu.RLock()
	subs := slices.Clone(s.subscribers)
	s.subMu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// Restore reloads the persisted token and revalidates it. Any doubt ends as anonymous.
func (s *sessionService) Restore(ctx context.Context, sid string) (*entity.Session, error) {
	st := s.live.get(sid)
	st.mu.Lock()
	defer st.mu.Unlock()

	return s.restoreLocked(ctx, sid, st), nil
}

func (s *sessionService) restoreLocked(ctx context.Context, sid string, st *sessionState) *entity.Session {
	st.restored = true
	st.session = nil

	token, ok, err := s.repo.Storage.Get(ctx, sid, repository.StorageKeyToken)
	if err != nil {
		s.log.Warn("Session storage unreadable, treating visitor as anonymous", zap.Error(err))
		s.clear(ctx, sid)
		return nil
	}
	if !ok || token == "" {
		// a profile without its token is never trusted
		s.clear(ctx, sid)
		return nil
	}

	user, err := s.repo.Auth.Me(ctx, token)
	if err != nil || !user.Role.IsStaff() {
		fields := []zap.Field{zap.String("visitor_id", sid)}
		if err != nil {
			fields = append(fields, zap.Error(err))
		} else {
			fields = append(fields, zap.String("role", string(user.Role)))
		}
		s.log.Info("Persisted session rejected", fields...)

		s.clear(ctx, sid)
		s.publish(SessionEvent{Type: SessionInvalidated, VisitorID: sid})
		return nil
	}

	session := &entity.Session{Token: token, User: *user}
	if err := s.persistUser(ctx, sid, user); err != nil {
		s.log.Warn("Failed to refresh persisted profile", zap.Error(err))
	}

	st.session = session
	s.publish(SessionEvent{Type: SessionRestored, VisitorID: sid, Role: user.Role})
	return session
}

// Current returns the visitor's session, restoring it the first time the visitor is seen.
func (s *sessionService) Current(ctx context.Context, sid string) (*entity.Session, error) {
	st := s.live.get(sid)
	st.mu.Lock()
	defer st.mu.Unlock()

	if !st.restored {
		return s.restoreLocked(ctx, sid, st), nil
	}
	return st.session, nil
}

func (s *sessionService) Login(ctx context.Context, sid string, req *request.LoginRequest) (*entity.Session, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	session, err := s.repo.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if !session.User.Role.IsStaff() {
		s.log.Info("Login refused for non staff account",
			zap.String("email", req.Email),
			zap.String("role", string(session.User.Role)),
		)
		return nil, ErrNotStaff
	}

	st := s.live.get(sid)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := s.repo.Storage.Set(ctx, sid, repository.StorageKeyToken, session.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	if err := s.persistUser(ctx, sid, &session.User); err != nil {
		s.clear(ctx, sid)
		return nil, fmt.Errorf("persist user: %w", err)
	}

	st.restored = true
	st.session = session

	s.log.Info("Staff signed in",
		zap.String("user_id", session.User.ID.String()),
		zap.String("role", string(session.User.Role)),
	)
	s.publish(SessionEvent{Type: SessionLoggedIn, VisitorID: sid, Role: session.User.Role})

	return session, nil
}

// Logout always ends anonymous, even if storage fails.
func (s *sessionService) Logout(ctx context.Context, sid string) error {
	st := s.live.get(sid)
	st.mu.Lock()
	role := entity.UserRole("")
	if st.session != nil {
		role = st.session.User.Role
	}
	st.restored = true
	st.session = nil
	st.mu.Unlock()

	err := s.repo.Storage.Delete(ctx, sid, repository.StorageKeyToken, repository.StorageKeyUser)
	if err != nil {
		s.log.Error("Failed to clear persisted session", zap.Error(err))
	}

	s.publish(SessionEvent{Type: SessionLoggedOut, VisitorID: sid, Role: role})
	return err
}

func (s *sessionService) Sweep(idle time.Duration) int {
	return s.live.sweep(idle)
}

func (s *sessionService) persistUser(ctx context.Context, sid string, user *entity.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.repo.Storage.Set(ctx, sid, repository.StorageKeyUser, string(raw))
}

func (s *sessionService) clear(ctx context.Context, sid string) {
	if err := s.repo.Storage.Delete(ctx, sid, repository.StorageKeyToken, repository.StorageKeyUser); err != nil {
		s.log.Error("Failed to clear persisted session", zap.Error(err))
	}
}
