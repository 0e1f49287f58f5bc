package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"pitch-booking/internal/data/entity"
	"pitch-booking/pkg/apiclient"

	"go.uber.org/zap"
)

type FieldRepository interface {
	List(ctx context.Context, fieldType entity.FieldType) ([]entity.Field, error)
	Create(ctx context.Context, token string, in *CreateFieldInput) error
	Delete(ctx context.Context, token string, id entity.ID) error
}

// CreateFieldInput is the body of POST /fields.
type CreateFieldInput struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Type         entity.FieldType `json:"type"`
	PricePerHour float64          `json:"pricePerHour"`
}

type fieldRepository struct {
	api apiclient.Doer
	log *zap.Logger
}

func NewFieldRepository(api apiclient.Doer, log *zap.Logger) FieldRepository {
	return &fieldRepository{
		api: api,
		log: log.With(zap.String("repository", "field")),
	}
}

// List returns every field, or the fields of one type when fieldType is concrete
func (r *fieldRepository) List(ctx context.Context, fieldType entity.FieldType) ([]entity.Field, error) {
	path := "/fields"
	if fieldType.IsConcrete() {
		path += "?" + url.Values{"type": {string(fieldType)}}.Encode()
	}

	var raw json.RawMessage
	if err := r.api.Do(ctx, http.MethodGet, path, "", nil, &raw); err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	return decodeList[entity.Field](raw, "fields")
}

func (r *fieldRepository) Create(ctx context.Context, token string, in *CreateFieldInput) error {
	if err := r.api.Do(ctx, http.MethodPost, "/fields", token, in, nil); err != nil {
		r.log.Error("Failed to create field",
			zap.Error(err),
			zap.String("name", in.Name),
			zap.String("type", string(in.Type)),
		)
		return fmt.Errorf("create field %s: %w", in.Name, err)
	}

	return nil
}

func (r *fieldRepository) Delete(ctx context.Context, token string, id entity.ID) error {
	path := "/fields/" + url.PathEscape(id.String())
	if err := r.api.Do(ctx, http.MethodDelete, path, token, nil, nil); err != nil {
		r.log.Error("Failed to delete field", zap.Error(err), zap.String("field_id", id.String()))
		return fmt.Errorf("delete field %s: %w", id, err)
	}

	return nil
}
