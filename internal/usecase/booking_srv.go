package usecase

import (
	"context"
	"errors"
	"time"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/dto/response"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

// BookingService drives the public booking wizard. Every call returns the
// visitor's current view, also when it fails.
type BookingService interface {
	View(sid string) *response.BookingView
	SetFieldType(ctx context.Context, sid string, fieldType entity.FieldType) (*response.BookingView, error)
	SetDate(ctx context.Context, sid string, date string) (*response.BookingView, error)
	SelectSlot(sid string, req *request.SelectSlotRequest) (*response.BookingView, error)
	Continue(sid string) (*response.BookingView, error)
	Back(sid string) *response.BookingView
	UpdateContact(sid string, req *request.ContactRequest) *response.BookingView
	BlurPhone(sid string) *response.BookingView
	Submit(ctx context.Context, sid string, method entity.PaymentMethod) (*response.BookingView, error)
	Acknowledge(sid string) *response.BookingView
	Sweep(idle time.Duration) int
}

type bookingService struct {
	repo        *repository.Repository
	flows       *visitorStore[bookingFlow]
	countryCode string
	log         *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:        repo,
		flows:       newVisitorStore(newBookingFlow),
		countryCode: config.Booking.PhoneCountryCode,
		log:         log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) View(sid string) *response.BookingView {
	f := s.flows.get(sid)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view()
}

func (s *bookingService) SetFieldType(ctx context.Context, sid string, fieldType entity.FieldType) (*response.BookingView, error) {
	f := s.flows.get(sid)
	f.mu.Lock()
	f.fieldType = fieldType
	return s.requery(ctx, f)
}

func (s *bookingService) SetDate(ctx context.Context, sid string, date string) (*response.BookingView, error) {
	f := s.flows.get(sid)
	f.mu.Lock()
	f.date = date
	return s.requery(ctx, f)
}

// requery is entered with f.mu held. It discards the selection and fetches the
// slots for the new date/type, dropping any answer that is no longer current.
func (s *bookingService) requery(ctx context.Context, f *bookingFlow) (*response.BookingView, error) {
	f.resetSelection()
	f.slots = nil

	if !f.wantsSlots() {
		f.query.stop()
		f.loading = false
		view := f.view()
		f.mu.Unlock()
		return view, nil
	}

	qctx, gen := f.query.next(ctx)
	date, fieldType := f.date, f.fieldType
	f.loading = true
	f.mu.Unlock()

	slots, err := s.repo.Reservation.Availability(qctx, date, fieldType)

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.query.current(gen) {
		s.log.Debug("Dropping stale availability answer",
			zap.String("date", date),
			zap.String("type", string(fieldType)),
		)
		return f.view(), nil
	}
	f.query.done(gen)
	f.loading = false

	if err != nil {
		s.log.Warn("Availability query failed",
			zap.Error(err),
			zap.String("date", date),
			zap.String("type", string(fieldType)),
		)
		return f.view(), err
	}

	f.slots = slots
	return f.view(), nil
}

func (s *bookingService) SelectSlot(sid string, req *request.SelectSlotRequest) (*response.BookingView, error) {
	f := s.flows.get(sid)
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.selectSlot(entity.ID(req.FieldID), req.StartTime); err != nil {
		return f.view(), err
	}
	return f.view(), nil
}

func (s *bookingService) Continue(sid string) (*response.BookingView, error) {
	f := s.flows.get(sid)
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.toDetailing(); err != nil {
		return f.view(), err
	}
	return f.view(), nil
}

func (s *bookingService) Back(sid string) *response.BookingView {
	f := s.flows.get(sid)
	f.mu.Lock()
	defer f.mu.Unlock()

	f.toSelecting()
	return f.view()
}

func (s *bookingService) UpdateContact(sid string, req *request.ContactRequest) *response.BookingView {
	f := s.flows.get(sid)
	f.mu.Lock()
	defer f.mu.Unlock()

	f.contact.update(req, f.errors)
	return f.view()
}

func (s *bookingService) BlurPhone(sid string) *response.BookingView {
	f := s.flows.get(sid)
	f.mu.Lock()
	defer f.mu.Unlock()

	f.blurPhone()
	return f.view()
}

// Submit sends the reservation right away; the payment method is the only difference
// between the two payment buttons.
func (s *bookingService) Submit(ctx context.Context, sid string, method entity.PaymentMethod) (*response.BookingView, error) {
	f := s.flows.get(sid)
	f.mu.Lock()

	if f.submitting {
		view := f.view()
		f.mu.Unlock()
		return view, ErrBusy
	}
	if f.step != StepDetailing || f.selected == nil {
		view := f.view()
		f.mu.Unlock()
		return view, ErrNoSlotSelected
	}
	if errs := f.contact.validate(); len(errs) > 0 {
		for k, msg := range errs {
			f.errors[k] = msg
		}
		view := f.view()
		f.mu.Unlock()
		return view, newValidationError(errs)
	}

	in := f.contact.reservationInput(f.selected, f.date, s.countryCode, method)
	f.submitting = true
	f.mu.Unlock()

	err := s.repo.Reservation.CreatePublic(ctx, in)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		// the form stays as typed so the customer can retry
		view := f.view()
		f.mu.Unlock()
		return view, err
	}
	f.completed()
	f.mu.Unlock()

	s.log.Info("Reservation submitted",
		zap.String("field_id", in.FieldID.String()),
		zap.String("date", in.Date),
		zap.String("start_time", in.StartTime),
		zap.String("payment_method", string(method)),
	)

	// reconcile: the booked slot is gone from availability now
	f.mu.Lock()
	view, rerr := s.requery(ctx, f)
	if rerr != nil && !errors.Is(rerr, context.Canceled) {
		s.log.Warn("Availability refresh after submit failed", zap.Error(rerr))
	}
	return view, nil
}

func (s *bookingService) Acknowledge(sid string) *response.BookingView {
	f := s.flows.get(sid)
	f.mu.Lock()
	defer f.mu.Unlock()

	f.overlay = false
	return f.view()
}

func (s *bookingService) Sweep(idle time.Duration) int {
	return s.flows.sweep(idle)
}
