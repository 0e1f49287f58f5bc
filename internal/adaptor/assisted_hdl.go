package adaptor

import (
	"net/http"

	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/usecase"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

// AssistedHandler serves the staff booking form.
type AssistedHandler struct {
	service usecase.AssistedService
	log     *zap.Logger
}

func NewAssistedHandler(service usecase.AssistedService, log *zap.Logger) *AssistedHandler {
	return &AssistedHandler{
		service: service,
		log:     log.With(zap.String("handler", "assisted")),
	}
}

// View handles GET /api/dashboard/assisted
func (h *AssistedHandler) View(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.View(visitorID(r)))
}

// SetQuery handles PUT /api/dashboard/assisted/query
func (h *AssistedHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	var req request.AssistedQueryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	utils.ResponseSuccess(w, "success", h.service.SetQuery(visitorID(r), &req))
}

// LoadSlots handles POST /api/dashboard/assisted/load
func (h *AssistedHandler) LoadSlots(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.LoadSlots(r.Context(), visitorID(r))
	if err != nil {
		respondError(w, h.log, err, "load slots", usecase.MsgAvailabilityFailed, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// SelectSlot handles POST /api/dashboard/assisted/slot
func (h *AssistedHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
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

// UpdateContact handles PUT /api/dashboard/assisted/contact
func (h *AssistedHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	utils.ResponseSuccess(w, "success", h.service.UpdateContact(visitorID(r), &req))
}

// Submit handles POST /api/dashboard/assisted/submit
func (h *AssistedHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitAssistedRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.Submit(r.Context(), visitorID(r), staffSession(r), &req)
	if err != nil {
		respondError(w, h.log, err, "staff reservation", usecase.MsgReservationFailed, view)
		return
	}

	utils.ResponseCreated(w, usecase.MsgStaffBookingDone, view)
}
