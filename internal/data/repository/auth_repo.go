package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pitch-booking/internal/data/entity"
	"pitch-booking/pkg/apiclient"

	"go.uber.org/zap"
)

type AuthRepository interface {
	Me(ctx context.Context, token string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.Session, error)
	CreateManager(ctx context.Context, token string, in *CreateManagerInput) (*entity.User, error)
	ListUsers(ctx context.Context, token string) ([]entity.User, error)
}

// CreateManagerInput is the body of POST /auth/create-gestionnaire.
type CreateManagerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type authRepository struct {
	api apiclient.Doer
	log *zap.Logger
}

func NewAuthRepository(api apiclient.Doer, log *zap.Logger) AuthRepository {
	return &authRepository{
		api: api,
		log: log.With(zap.String("repository", "auth")),
	}
}

type userEnvelope struct {
	User *entity.User `json:"user"`
}

// Me asks the API who owns token
func (r *authRepository) Me(ctx context.Context, token string) (*entity.User, error) {
	var out userEnvelope
	if err := r.api.Do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}

	if out.User == nil {
		return nil, fmt.Errorf("fetch current user: missing user: %w", apiclient.ErrInvalidResponse)
	}

	return out.User, nil
}

func (r *authRepository) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var out entity.Session
	if err := r.api.Do(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		r.log.Warn("Login rejected", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("login %s: %w", email, err)
	}

	if out.Token == "" {
		return nil, fmt.Errorf("login %s: missing token: %w", email, apiclient.ErrInvalidResponse)
	}

	return &out, nil
}

func (r *authRepository) CreateManager(ctx context.Context, token string, in *CreateManagerInput) (*entity.User, error) {
	var raw json.RawMessage
	if err := r.api.Do(ctx, http.MethodPost, "/auth/create-gestionnaire", token, in, &raw); err != nil {
		return nil, fmt.Errorf("create manager %s: %w", in.Email, err)
	}

	// the API answers either {user: {...}} or the user itself
	var wrapped userEnvelope
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}

	var user entity.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		// created, but the body carries no user; callers reload the list anyway
		return nil, nil
	}

	return &user, nil
}

func (r *authRepository) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	var raw json.RawMessage
	if err := r.api.Do(ctx, http.MethodGet, "/auth/users", token, nil, &raw); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return decodeList[entity.User](raw, "users")
}
