package adaptor

import (
	"net/http"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/usecase"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

// BookingHandler serves the public booking wizard.
type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// View handles GET /api/booking
func (h *BookingHandler) View(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.View(visitorID(r)))
}

// SetFieldType handles PUT /api/booking/field-type
func (h *BookingHandler) SetFieldType(w http.ResponseWriter, r *http.Request) {
	var req request.FieldTypeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.SetFieldType(r.Context(), visitorID(r), entity.FieldType(req.Type))
	if err != nil {
		respondError(w, h.log, err, "load availability", usecase.MsgAvailabilityFailed, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// SetDate handles PUT /api/booking/date
func (h *BookingHandler) SetDate(w http.ResponseWriter, r *http.Request) {
	var req request.DateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.SetDate(r.Context(), visitorID(r), req.Date)
	if err != nil {
		respondError(w, h.log, err, "load availability", usecase.MsgAvailabilityFailed, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// SelectSlot handles POST /api/booking/slot
func (h *BookingHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	var req request.SelectSlotRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.SelectSlot(visitorID(r), &req)
	if err != nil {
		respondError(w, h.log, err, "select slot", msgNoSlot, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// Continue handles POST /api/booking/continue
func (h *BookingHandler) Continue(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Continue(visitorID(r))
	if err != nil {
		respondError(w, h.log, err, "continue", msgNoSlot, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// Back handles POST /api/booking/back
func (h *BookingHandler) Back(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.Back(visitorID(r)))
}

// UpdateContact handles PUT /api/booking/contact
func (h *BookingHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	utils.ResponseSuccess(w, "success", h.service.UpdateContact(visitorID(r), &req))
}

// BlurPhone handles POST /api/booking/phone/blur
func (h *BookingHandler) BlurPhone(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.BlurPhone(visitorID(r)))
}

// Submit handles POST /api/booking/submit
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.Submit(r.Context(), visitorID(r), entity.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respondError(w, h.log, err, "submit reservation", usecase.MsgReservationFailed, view)
		return
	}

	utils.ResponseCreated(w, "Réservation envoyée", view)
}

// Acknowledge handles POST /api/booking/acknowledge
func (h *BookingHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.Acknowledge(visitorID(r)))
}
