package usecase

import (
	"context"
	"strings"
	"sync"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/dto/response"
	"pitch-booking/pkg/utils"
)

type BookingStep string

const (
	StepSelecting BookingStep = "selecting"
	StepDetailing BookingStep = "detailing"
)

// contactForm is the customer part shared by the public and the staff booking forms.
type contactForm struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// update copies the inputs, sanitizing the phone. A shown phone error goes away
// once the number is valid; a new one is only raised on blur or submit.
func (c *contactForm) update(req *request.ContactRequest, errs map[string]string) {
	c.Name = req.Name
	c.Phone = utils.SanitizePhone(req.Phone)
	c.Email = strings.TrimSpace(req.Email)
	c.Address = strings.TrimSpace(req.Address)

	if utils.IsValidPhone(c.Phone) {
		delete(errs, "phone")
	}
	if strings.TrimSpace(c.Name) != "" {
		delete(errs, "name")
	}
}

func (c *contactForm) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = MsgNameRequired
	}
	if !utils.IsValidPhone(c.Phone) {
		errs["phone"] = MsgPhoneInvalid
	}
	return errs
}

func (c *contactForm) ready() bool {
	return strings.TrimSpace(c.Name) != "" && utils.IsValidPhone(c.Phone)
}

func (c *contactForm) view() response.ContactView {
	return response.ContactView{
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
	}
}

// reservationInput builds the API body; the phone goes out with its country code.
func (c *contactForm) reservationInput(slot *entity.Slot, date, countryCode string, method entity.PaymentMethod) *repository.CreateReservationInput {
	return &repository.CreateReservationInput{
		FieldID:       slot.FieldID,
		Date:          date,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		Name:          strings.TrimSpace(c.Name),
		Email:         c.Email,
		Phone:         utils.WithCountryCode(countryCode, c.Phone),
		Address:       c.Address,
		PaymentMethod: method,
	}
}

// slotQuery tracks the availability request of a form so late answers can be dropped.
type slotQuery struct {
	generation uint64
	cancel     context.CancelFunc
}

// next starts a new query generation and cancels the one in flight.
func (q *slotQuery) next(parent context.Context) (context.Context, uint64) {
	q.stop()
	q.generation++
	ctx, cancel := context.WithCancel(parent)
	q.cancel = cancel
	return ctx, q.generation
}

// stop invalidates the query in flight without starting a new one.
func (q *slotQuery) stop() {
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.generation++
}

func (q *slotQuery) current(gen uint64) bool {
	return q.generation == gen
}

func (q *slotQuery) done(gen uint64) {
	if q.current(gen) && q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
}

// bookingFlow is the public two step wizard of one visitor.
type bookingFlow struct {
	mu sync.Mutex

	step       BookingStep
	fieldType  entity.FieldType
	date       string
	slots      []entity.Slot
	selected   *entity.Slot
	contact    contactForm
	errors     map[string]string
	overlay    bool
	loading    bool
	submitting bool
	query      slotQuery
}

func newBookingFlow() *bookingFlow {
	return &bookingFlow{
		step:      StepSelecting,
		fieldType: entity.FieldTypeAny,
		errors:    make(map[string]string),
	}
}

// resetSelection drops the chosen slot and goes back to browsing.
func (f *bookingFlow) resetSelection() {
	f.selected = nil
	f.step = StepSelecting
}

// wantsSlots is true when date and a concrete type are both set.
func (f *bookingFlow) wantsSlots() bool {
	return f.date != "" && f.fieldType.IsConcrete()
}

func (f *bookingFlow) selectSlot(fieldID entity.ID, startTime string) error {
	for i := range f.slots {
		if f.slots[i].Matches(fieldID, startTime) {
			slot := f.slots[i]
			f.selected = &slot
			return nil
		}
	}
	return ErrNotFound
}

func (f *bookingFlow) toDetailing() error {
	if f.selected == nil {
		return ErrNoSlotSelected
	}
	f.step = StepDetailing
	return nil
}

func (f *bookingFlow) toSelecting() {
	f.step = StepSelecting
}

func (f *bookingFlow) blurPhone() {
	if !utils.IsValidPhone(f.contact.Phone) {
		f.errors["phone"] = MsgPhoneInvalid
	}
}

// completed clears the form after a successful submission and raises the overlay.
func (f *bookingFlow) completed() {
	f.contact = contactForm{}
	f.errors = make(map[string]string)
	f.resetSelection()
	f.overlay = true
}

func (f *bookingFlow) view() *response.BookingView {
	v := &response.BookingView{
		Step:           string(f.step),
		FieldType:      f.fieldType,
		Date:           f.date,
		Slots:          response.SlotsToView(f.slots, f.selected),
		Contact:        f.contact.view(),
		PaymentEnabled: f.step == StepDetailing && f.selected != nil && f.contact.ready(),
		SuccessOverlay: f.overlay,
		Loading:        f.loading,
		Submitting:     f.submitting,
	}
	if f.selected != nil {
		sv := response.SlotToView(*f.selected, f.selected)
		v.SelectedSlot = &sv
	}
	if len(f.errors) > 0 {
		v.Errors = make(map[string]string, len(f.errors))
		for k, msg := range f.errors {
			v.Errors[k] = msg
		}
	}
	return v
}
