package usecase

import (
	"context"
	"fmt"
	"strings"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/dto/response"
	"pitch-booking/pkg/apiclient"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

const msgManagerFailed = "La création du gestionnaire a échoué"

// UserService lists staff accounts and creates managers. Admin only.
type UserService interface {
	List(ctx context.Context, sid string, session *entity.Session) (*response.UserPanelView, error)
	CreateManager(ctx context.Context, sid string, session *entity.Session, req *request.CreateManagerRequest) (*response.UserPanelView, error)
}

type userService struct {
	repo       *repository.Repository
	dashboards *visitorStore[dashboardState]
	log        *zap.Logger
}

func NewUserService(repo *repository.Repository, dashboards *visitorStore[dashboardState], log *zap.Logger) UserService {
	return &userService{
		repo:       repo,
		dashboards: dashboards,
		log:        log.With(zap.String("service", "user")),
	}
}

func (s *userService) List(ctx context.Context, sid string, session *entity.Session) (*response.UserPanelView, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}

	d := s.dashboards.get(sid)
	return s.reconcile(ctx, d, session, response.ManagerFormView{})
}

// CreateManager keeps the typed form (without the password) and an inline error when
// anything fails; on success the form is cleared and the list reloaded.
func (s *userService) CreateManager(ctx context.Context, sid string, session *entity.Session, req *request.CreateManagerRequest) (*response.UserPanelView, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}

	d := s.dashboards.get(sid)
	form := response.ManagerFormView{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		d.mu.Lock()
		defer d.mu.Unlock()
		view := userPanelView(d, form)
		view.Errors = errs
		return view, newValidationError(errs)
	}

	in := &repository.CreateManagerInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Password: req.Password,
	}
	user, err := s.repo.Auth.CreateManager(ctx, session.Token, in)
	if err != nil {
		s.log.Warn("Manager creation failed", zap.Error(err), zap.String("email", in.Email))

		d.mu.Lock()
		defer d.mu.Unlock()
		view := userPanelView(d, form)
		view.Error = apiclient.UserMessage(err, msgManagerFailed)
		return view, err
	}

	fields := []zap.Field{zap.String("user_id", session.User.ID.String()), zap.String("email", in.Email)}
	if user != nil {
		fields = append(fields, zap.String("manager_id", user.ID.String()))
	}
	s.log.Info("Manager created", fields...)

	view, err := s.reconcile(ctx, d, session, response.ManagerFormView{})
	if view != nil {
		view.Notice = MsgManagerCreated
	}
	return view, err
}

func (s *userService) reconcile(ctx context.Context, d *dashboardState, session *entity.Session, form response.ManagerFormView) (*response.UserPanelView, error) {
	users, err := s.repo.Auth.ListUsers(ctx, session.Token)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		return userPanelView(d, form), fmt.Errorf("refresh users: %w", err)
	}
	d.users = users
	return userPanelView(d, form), nil
}

// userPanelView only lists staff accounts. It is called with d.mu held.
func userPanelView(d *dashboardState, form response.ManagerFormView) *response.UserPanelView {
	v := &response.UserPanelView{
		Users: []response.UserView{},
		Form:  form,
	}
	for _, u := range d.users {
		if u.Role.IsStaff() {
			v.Users = append(v.Users, response.UserToView(u))
		}
	}
	return v
}
