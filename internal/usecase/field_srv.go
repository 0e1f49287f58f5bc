package usecase

import (
	"context"
	"fmt"
	"strings"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/dto/response"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

const msgPriceInvalid = "Le prix doit être un nombre supérieur à 0"

// FieldService manages the pitches. Admin only.
type FieldService interface {
	List(ctx context.Context, sid string, session *entity.Session) (*response.FieldPanelView, error)
	Create(ctx context.Context, sid string, session *entity.Session, req *request.CreateFieldRequest) (*response.FieldPanelView, error)
	Delete(ctx context.Context, sid string, session *entity.Session, id entity.ID, confirmed bool) (*response.FieldPanelView, error)
}

type fieldService struct {
	repo       *repository.Repository
	dashboards *visitorStore[dashboardState]
	log        *zap.Logger
}

func NewFieldService(repo *repository.Repository, dashboards *visitorStore[dashboardState], log *zap.Logger) FieldService {
	return &fieldService{
		repo:       repo,
		dashboards: dashboards,
		log:        log.With(zap.String("service", "field")),
	}
}

func (s *fieldService) List(ctx context.Context, sid string, session *entity.Session) (*response.FieldPanelView, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}

	d := s.dashboards.get(sid)
	return s.reconcile(ctx, d, "")
}

func (s *fieldService) Create(ctx context.Context, sid string, session *entity.Session, req *request.CreateFieldRequest) (*response.FieldPanelView, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}

	d := s.dashboards.get(sid)

	errs := utils.ValidateStruct(req)
	price, ok := utils.ParseAmount(string(req.PricePerHour))
	if !ok || price <= 0 {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["pricePerHour"] = msgPriceInvalid
	}
	if len(errs) > 0 {
		d.mu.Lock()
		defer d.mu.Unlock()
		return fieldPanelView(d, ""), newValidationError(errs)
	}

	in := &repository.CreateFieldInput{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Type:         entity.FieldType(req.Type),
		PricePerHour: price,
	}
	if err := s.repo.Field.Create(ctx, session.Token, in); err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		return fieldPanelView(d, ""), err
	}

	s.log.Info("Field created",
		zap.String("user_id", session.User.ID.String()),
		zap.String("name", in.Name),
		zap.String("type", string(in.Type)),
	)
	return s.reconcile(ctx, d, "")
}

// Delete needs an explicit confirmation; without it only the warning is returned.
func (s *fieldService) Delete(ctx context.Context, sid string, session *entity.Session, id entity.ID, confirmed bool) (*response.FieldPanelView, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}

	d := s.dashboards.get(sid)
	if !confirmed {
		d.mu.Lock()
		defer d.mu.Unlock()
		return fieldPanelView(d, MsgDeleteFieldPrompt), ErrConfirmationRequired
	}

	if err := s.repo.Field.Delete(ctx, session.Token, id); err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		return fieldPanelView(d, ""), err
	}

	s.log.Info("Field deleted",
		zap.String("user_id", session.User.ID.String()),
		zap.String("field_id", id.String()),
	)
	return s.reconcile(ctx, d, "")
}

func (s *fieldService) reconcile(ctx context.Context, d *dashboardState, prompt string) (*response.FieldPanelView, error) {
	fields, err := s.repo.Field.List(ctx, "")

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		return fieldPanelView(d, prompt), fmt.Errorf("refresh fields: %w", err)
	}
	d.fields = fields
	return fieldPanelView(d, prompt), nil
}

// fieldPanelView is called with d.mu held.
func fieldPanelView(d *dashboardState, prompt string) *response.FieldPanelView {
	return &response.FieldPanelView{
		Fields: response.FieldsToView(d.fields),
		Prompt: prompt,
	}
}
