package usecase

import (
	"context"
	"fmt"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/dto/response"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// assistedForm is the single page booking form staff fill in for walk-in or phone
// customers. It lives in dashboardState and is guarded by its mutex.
type assistedForm struct {
	fieldType  entity.FieldType
	date       string
	loaded     bool
	slots      []entity.Slot
	selected   *entity.Slot
	contact    contactForm
	method     entity.PaymentMethod
	errors     map[string]string
	notice     string
	loading    bool
	submitting bool
	query      slotQuery
}

func newAssistedForm() assistedForm {
	return assistedForm{
		fieldType: entity.FieldTypeAny,
		method:    entity.PaymentCash,
		errors:    make(map[string]string),
	}
}

func (a *assistedForm) view() *response.AssistedView {
	v := &response.AssistedView{
		FieldType:     a.fieldType,
		Date:          a.date,
		Loaded:        a.loaded,
		Slots:         response.SlotsToView(a.slots, a.selected),
		Contact:       a.contact.view(),
		PaymentMethod: a.method,
		Notice:        a.notice,
		Loading:       a.loading,
		Submitting:    a.submitting,
	}
	if a.selected != nil {
		sv := response.SlotToView(*a.selected, a.selected)
		v.SelectedSlot = &sv
	}
	if len(a.errors) > 0 {
		v.Errors = make(map[string]string, len(a.errors))
		for k, msg := range a.errors {
			v.Errors[k] = msg
		}
	}
	return v
}

// resetSlots forgets loaded slots and the selection, e.g. after the query changed.
func (a *assistedForm) resetSlots() {
	a.query.stop()
	a.slots = nil
	a.selected = nil
	a.loaded = false
	a.loading = false
}

// AssistedService is the staff booking form of the dashboard.
type AssistedService interface {
	View(sid string) *response.AssistedView
	SetQuery(sid string, req *request.AssistedQueryRequest) *response.AssistedView
	LoadSlots(ctx context.Context, sid string) (*response.AssistedView, error)
	SelectSlot(sid string, req *request.SelectSlotRequest) (*response.AssistedView, error)
	UpdateContact(sid string, req *request.ContactRequest) *response.AssistedView
	Submit(ctx context.Context, sid string, session *entity.Session, req *request.SubmitAssistedRequest) (*response.AssistedView, error)
}

type assistedService struct {
	repo        *repository.Repository
	dashboards  *visitorStore[dashboardState]
	countryCode string
	log         *zap.Logger
}

func NewAssistedService(repo *repository.Repository, dashboards *visitorStore[dashboardState], config *utils.Config, log *zap.Logger) AssistedService {
	return &assistedService{
		repo:        repo,
		dashboards:  dashboards,
		countryCode: config.Booking.PhoneCountryCode,
		log:         log.With(zap.String("service", "assisted")),
	}
}

func (s *assistedService) View(sid string) *response.AssistedView {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.assisted.view()
}

// SetQuery changes date and type. Slots are only fetched on LoadSlots.
func (s *assistedService) SetQuery(sid string, req *request.AssistedQueryRequest) *response.AssistedView {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	defer d.mu.Unlock()

	a := &d.assisted
	fieldType := entity.FieldType(req.Type)
	if fieldType == "" {
		fieldType = a.fieldType
	}
	if fieldType != a.fieldType || req.Date != a.date {
		a.resetSlots()
	}
	a.fieldType = fieldType
	a.date = req.Date
	a.notice = ""
	return a.view()
}

// LoadSlots issues no request until both a date and a concrete type are chosen.
func (s *assistedService) LoadSlots(ctx context.Context, sid string) (*response.AssistedView, error) {
	d := s.dashboards.get(sid)
	d.mu.Lock()

	a := &d.assisted
	if a.date == "" || !a.fieldType.IsConcrete() {
		a.resetSlots()
		view := a.view()
		d.mu.Unlock()
		return view, nil
	}

	qctx, gen := a.query.next(ctx)
	date, fieldType := a.date, a.fieldType
	a.loading = true
	d.mu.Unlock()

	slots, err := s.repo.Reservation.Availability(qctx, date, fieldType)

	d.mu.Lock()
	defer d.mu.Unlock()

	if !a.query.current(gen) {
		return a.view(), nil
	}
	a.query.done(gen)
	a.loading = false

	if err != nil {
		s.log.Warn("Assisted availability failed", zap.Error(err), zap.String("date", date))
		return a.view(), err
	}
	a.slots = slots
	a.selected = nil
	a.loaded = true
	return a.view(), nil
}

func (s *assistedService) SelectSlot(sid string, req *request.SelectSlotRequest) (*response.AssistedView, error) {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	defer d.mu.Unlock()

	a := &d.assisted
	for i := range a.slots {
		if a.slots[i].Matches(entity.ID(req.FieldID), req.StartTime) {
			slot := a.slots[i]
			a.selected = &slot
			delete(a.errors, "slot")
			return a.view(), nil
		}
	}
	return a.view(), ErrNotFound
}

func (s *assistedService) UpdateContact(sid string, req *request.ContactRequest) *response.AssistedView {
	d := s.dashboards.get(sid)
	d.mu.Lock()
	defer d.mu.Unlock()

	d.assisted.contact.update(req, d.assisted.errors)
	d.assisted.notice = ""
	return d.assisted.view()
}

// Submit books the selected slot on behalf of a customer, then reloads the
// reservation list and the slots side by side.
func (s *assistedService) Submit(ctx context.Context, sid string, session *entity.Session, req *request.SubmitAssistedRequest) (*response.AssistedView, error) {
	d := s.dashboards.get(sid)
	d.mu.Lock()

	a := &d.assisted
	if a.submitting {
		view := a.view()
		d.mu.Unlock()
		return view, ErrBusy
	}
	if req.PaymentMethod != "" {
		a.method = entity.PaymentMethod(req.PaymentMethod)
	}
	if a.selected == nil {
		view := a.view()
		d.mu.Unlock()
		return view, ErrNoSlotSelected
	}
	if errs := a.contact.validate(); len(errs) > 0 {
		for k, msg := range errs {
			a.errors[k] = msg
		}
		view := a.view()
		d.mu.Unlock()
		return view, newValidationError(errs)
	}

	in := a.contact.reservationInput(a.selected, a.date, s.countryCode, a.method)
	date, fieldType := a.date, a.fieldType
	a.submitting = true
	a.notice = ""
	d.mu.Unlock()

	err := s.repo.Reservation.CreateByStaff(ctx, session.Token, in)

	d.mu.Lock()
	a.submitting = false
	if err != nil {
		view := a.view()
		d.mu.Unlock()
		return view, err
	}
	a.contact = contactForm{}
	a.errors = make(map[string]string)
	a.selected = nil
	a.notice = MsgStaffBookingDone
	d.mu.Unlock()

	s.log.Info("Staff reservation created",
		zap.String("user_id", session.User.ID.String()),
		zap.String("field_id", in.FieldID.String()),
		zap.String("date", in.Date),
		zap.String("start_time", in.StartTime),
		zap.String("payment_method", string(in.PaymentMethod)),
	)

	if rerr := s.reconcile(ctx, d, session, date, fieldType); rerr != nil {
		s.log.Warn("Refresh after staff reservation failed", zap.Error(rerr))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return a.view(), nil
}

func (s *assistedService) reconcile(ctx context.Context, d *dashboardState, session *entity.Session, date string, fieldType entity.FieldType) error {
	var (
		reservations []entity.Reservation
		slots        []entity.Slot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = s.repo.Reservation.List(gctx, session.Token)
		return err
	})
	g.Go(func() error {
		var err error
		slots, err = s.repo.Reservation.Availability(gctx, date, fieldType)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh dashboard: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.reservations = reservations
	// a query changed in the meantime keeps its own slots
	if d.assisted.date == date && d.assisted.fieldType == fieldType {
		d.assisted.slots = slots
		d.assisted.loaded = true
	}
	return nil
}
