package usecase

import (
	"context"
	"fmt"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/dto/response"

	"go.uber.org/zap"
)

type PaymentMode string

const (
	PaymentModeFull PaymentMode = "full"
	PaymentModeHalf PaymentMode = "half"
)

type paymentDialog struct {
	reservationID entity.ID
	method        entity.PaymentMethod
	mode          PaymentMode
}

// patch turns the dialog choice into the partial update to send.
func (p *paymentDialog) patch(r *entity.Reservation) *repository.ReservationPatch {
	method := p.method
	status := entity.PaymentPaid
	amount := r.TotalPrice.Float()
	if p.mode == PaymentModeHalf {
		status = entity.PaymentPartial
		amount = r.HalfAmount().Float()
	}
	return &repository.ReservationPatch{
		PaymentMethod: &method,
		PaymentStatus: &status,
		PaidAmount:    &amount,
	}
}

// ReservationService is the reservation listing of the dashboard. Each mutation is
// sent, awaited, then the list is fetched again.
type ReservationService interface {
	List(ctx context.Context, sid string, session *entity.Session) (*response.ReservationListView, error)
	Refresh(ctx context.Context, sid string, session *entity.Session) (*response.ReservationListView, error)
	SetFilters(sid string, session *entity.Session, req *request.ReservationFiltersRequest) *response.ReservationListView
	SetPaymentMethod(ctx context.Context, sid string, session *entity.Session, id entity.ID, method entity.PaymentMethod) (*response.ReservationListView, error)
	Confirm(ctx context.Context, sid string, session *entity.Session, id entity.ID) (*response.ReservationListView, error)
	Cancel(ctx context.Context, sid string, session *entity.Session, id entity.ID) (*response.ReservationListView, error)
	CompletePayment(ctx context.Context, sid string, session *entity.Session, id entity.ID) (*response.ReservationListView, error)
	OpenPaymentDialog(sid string, session *entity.Session, id entity.ID) (*response.ReservationListView, error)
	UpdatePaymentDialog(sid string, session *entity.Session, req *request.PaymentDialogRequest) (*response.ReservationListView, error)
	CommitPaymentDialog(ctx context.Context, sid string, session *entity.Session) (*response.ReservationListView, error)
	ClosePaymentDialog(sid string, session *entity.Session) *response.ReservationListView
}

type reservationService struct {
	repo       *repository.Repository
	dashboards *visitorStore[dashboardState]
	log        *zap.Logger
}

func NewReservationService(repo *repository.Repository, dashboards *visitorStore[dashboardState], log *zap.Logger) ReservationService {
	return &reservationService{
		repo:       repo,
		dashboards: dashboards,
		log:        log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) List(ctx context.Context, sid string, session *entity.Session) (*response.ReservationListView, error) {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	mounted := d.mounted
	d.mu.Unlock()

	if !mounted {
		return s.Refresh(ctx, sid, session)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return reservationListView(d, session), nil
}

// Refresh re-fetches reservations and fields.
func (s *reservationService) Refresh(ctx context.Context, sid string, session *entity.Session) (*response.ReservationListView, error) {
	d := s.dashboards.get(sid)
	err := loadDashboard(ctx, s.repo, d, session, s.log)
	if err != nil {
		s.log.Warn("Reservation refresh failed", zap.Error(err))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return reservationListView(d, session), err
}

func (s *reservationService) SetFilters(sid string, session *entity.Session, req *request.ReservationFiltersRequest) *response.ReservationListView {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	defer d.mu.Unlock()

	fieldType := entity.FieldType(req.Type)
	if fieldType == "" {
		fieldType = entity.FieldTypeAny
	}
	d.filters = response.ReservationFilters{Type: fieldType, Date: req.Date}
	return reservationListView(d, session)
}

func (s *reservationService) SetPaymentMethod(ctx context.Context, sid string, session *entity.Session, id entity.ID, method entity.PaymentMethod) (*response.ReservationListView, error) {
	return s.mutate(ctx, sid, session, id, func(*entity.Reservation) (*repository.ReservationPatch, error) {
		return &repository.ReservationPatch{PaymentMethod: &method}, nil
	})
}

// Confirm is idempotent from the user's point of view: a confirmed row has the button disabled.
func (s *reservationService) Confirm(ctx context.Context, sid string, session *entity.Session, id entity.ID) (*response.ReservationListView, error) {
	return s.mutate(ctx, sid, session, id, func(r *entity.Reservation) (*repository.ReservationPatch, error) {
		if !r.CanConfirm() {
			return nil, ErrActionDisabled
		}
		status := entity.ReservationConfirmed
		return &repository.ReservationPatch{Status: &status}, nil
	})
}

func (s *reservationService) Cancel(ctx context.Context, sid string, session *entity.Session, id entity.ID) (*response.ReservationListView, error) {
	return s.mutate(ctx, sid, session, id, func(r *entity.Reservation) (*repository.ReservationPatch, error) {
		if !session.IsAdmin() {
			return nil, ErrForbidden
		}
		if !r.CanCancel() {
			return nil, ErrActionDisabled
		}
		status := entity.ReservationCancelled
		return &repository.ReservationPatch{Status: &status}, nil
	})
}

func (s *reservationService) CompletePayment(ctx context.Context, sid string, session *entity.Session, id entity.ID) (*response.ReservationListView, error) {
	return s.mutate(ctx, sid, session, id, func(r *entity.Reservation) (*repository.ReservationPatch, error) {
		if !r.CanCompletePayment() {
			return nil, ErrActionDisabled
		}
		status := entity.PaymentPaid
		amount := r.TotalPrice.Float()
		return &repository.ReservationPatch{PaymentStatus: &status, PaidAmount: &amount}, nil
	})
}

func (s *reservationService) OpenPaymentDialog(sid string, session *entity.Session, id entity.ID) (*response.ReservationListView, error) {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	defer d.mu.Unlock()

	r, ok := d.findReservation(id)
	if !ok {
		return reservationListView(d, session), ErrNotFound
	}
	if !r.CanRecordPayment() {
		return reservationListView(d, session), ErrActionDisabled
	}

	method := entity.PaymentCash
	if r.PaymentMethod != nil && *r.PaymentMethod != "" && *r.PaymentMethod != entity.PaymentAdmin {
		method = *r.PaymentMethod
	}
	d.dialog = &paymentDialog{reservationID: id, method: method, mode: PaymentModeFull}
	return reservationListView(d, session), nil
}

func (s *reservationService) UpdatePaymentDialog(sid string, session *entity.Session, req *request.PaymentDialogRequest) (*response.ReservationListView, error) {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dialog == nil {
		return reservationListView(d, session), ErrNotFound
	}
	d.dialog.method = entity.PaymentMethod(req.PaymentMethod)
	d.dialog.mode = PaymentMode(req.Mode)
	return reservationListView(d, session), nil
}

// CommitPaymentDialog records the payment; the dialog stays open if the update fails.
func (s *reservationService) CommitPaymentDialog(ctx context.Context, sid string, session *entity.Session) (*response.ReservationListView, error) {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	dialog := d.dialog
	d.mu.Unlock()

	if dialog == nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		return reservationListView(d, session), ErrNotFound
	}

	view, err := s.mutate(ctx, sid, session, dialog.reservationID, func(r *entity.Reservation) (*repository.ReservationPatch, error) {
		if !r.CanRecordPayment() {
			return nil, ErrActionDisabled
		}
		return dialog.patch(r), nil
	})
	if err != nil {
		return view, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dialog == dialog {
		d.dialog = nil
	}
	return reservationListView(d, session), nil
}

func (s *reservationService) ClosePaymentDialog(sid string, session *entity.Session) *response.ReservationListView {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	defer d.mu.Unlock()

	d.dialog = nil
	return reservationListView(d, session)
}

// mutate checks the row with build, sends the patch, then reconciles the list.
func (s *reservationService) mutate(
	ctx context.Context,
	sid string,
	session *entity.Session,
	id entity.ID,
	build func(r *entity.Reservation) (*repository.ReservationPatch, error),
) (*response.ReservationListView, error) {
	d := s.dashboards.get(sid)

	d.mu.Lock()
	r, ok := d.findReservation(id)
	if !ok {
		view := reservationListView(d, session)
		d.mu.Unlock()
		return view, ErrNotFound
	}
	patch, err := build(r)
	if err != nil {
		view := reservationListView(d, session)
		d.mu.Unlock()
		return view, err
	}
	d.mu.Unlock()

	if err := s.repo.Reservation.Update(ctx, session.Token, id, patch); err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		return reservationListView(d, session), err
	}

	s.log.Info("Reservation updated",
		zap.String("reservation_id", id.String()),
		zap.String("user_id", session.User.ID.String()),
	)

	return s.reconcile(ctx, d, session)
}

func (s *reservationService) reconcile(ctx context.Context, d *dashboardState, session *entity.Session) (*response.ReservationListView, error) {
	reservations, err := s.repo.Reservation.List(ctx, session.Token)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		s.log.Warn("Reservation list refresh failed", zap.Error(err))
		return reservationListView(d, session), fmt.Errorf("refresh reservations: %w", err)
	}
	d.reservations = reservations
	return reservationListView(d, session), nil
}

// rowActions decides which buttons a row shows enabled for the signed in role.
func rowActions(r *entity.Reservation, session *entity.Session) response.RowActions {
	return response.RowActions{
		CanConfirm:         r.CanConfirm(),
		CanCancel:          session.IsAdmin() && r.CanCancel(),
		CanCompletePayment: r.CanCompletePayment(),
		CanRecordPayment:   r.CanRecordPayment(),
	}
}

// matchesFilters applies the two client side filters. Type comes from the embedded
// field or, for bare ids, from the loaded field list.
func matchesFilters(r *entity.Reservation, f response.ReservationFilters, fieldType entity.FieldType) bool {
	if f.Type.IsConcrete() && fieldType != f.Type {
		return false
	}
	if f.Date != "" && r.Day() != f.Date {
		return false
	}
	return true
}

// reservationListView is called with d.mu held.
func reservationListView(d *dashboardState, session *entity.Session) *response.ReservationListView {
	byID := make(map[entity.ID]entity.Field, len(d.fields))
	for _, f := range d.fields {
		byID[f.ID] = f
	}

	v := &response.ReservationListView{
		Filters: d.filters,
		Rows:    []response.ReservationRow{},
		Fields:  response.FieldsToView(d.fields),
	}

	for i := range d.reservations {
		r := d.reservations[i]
		if known, ok := byID[r.Field.ID]; ok {
			if r.Field.Name == "" {
				r.Field.Name = known.Name
			}
			if r.Field.Type == "" {
				r.Field.Type = known.Type
			}
		}
		if !matchesFilters(&r, d.filters, r.Field.Type) {
			continue
		}
		v.Rows = append(v.Rows, response.ReservationToRow(r, rowActions(&r, session)))
	}
	v.Total = len(v.Rows)

	if d.dialog != nil {
		if r, ok := d.findReservation(d.dialog.reservationID); ok {
			amount := r.TotalPrice.Float()
			if d.dialog.mode == PaymentModeHalf {
				amount = r.HalfAmount().Float()
			}
			v.Dialog = &response.PaymentDialogView{
				ReservationID: r.ID.String(),
				CustomerName:  r.CustomerName,
				TotalPrice:    r.TotalPrice.Float(),
				PaymentMethod: d.dialog.method,
				Mode:          string(d.dialog.mode),
				Amount:        amount,
			}
		}
	}
	return v
}
