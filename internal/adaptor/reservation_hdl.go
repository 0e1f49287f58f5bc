package adaptor

import (
	"net/http"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/usecase"
	"pitch-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReservationHandler serves the reservation list of the dashboard and its row actions.
type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// List handles GET /api/dashboard/reservations
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.List(r.Context(), visitorID(r), staffSession(r))
	if err != nil {
		respondError(w, h.log, err, "list reservations", usecase.MsgConnectivity, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// Refresh handles POST /api/dashboard/reservations/refresh
func (h *ReservationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Refresh(r.Context(), visitorID(r), staffSession(r))
	if err != nil {
		respondError(w, h.log, err, "refresh reservations", usecase.MsgConnectivity, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// SetFilters handles PUT /api/dashboard/reservations/filters
func (h *ReservationHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req request.ReservationFiltersRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	utils.ResponseSuccess(w, "success", h.service.SetFilters(visitorID(r), staffSession(r), &req))
}

// SetPaymentMethod handles PUT /api/dashboard/reservations/{id}/payment-method
func (h *ReservationHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentMethodRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.SetPaymentMethod(r.Context(), visitorID(r), staffSession(r),
		reservationID(r), entity.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respondError(w, h.log, err, "set payment method", usecase.MsgUpdateFailed, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// Confirm handles POST /api/dashboard/reservations/{id}/confirm
func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Confirm(r.Context(), visitorID(r), staffSession(r), reservationID(r))
	if err != nil {
		respondError(w, h.log, err, "confirm reservation", usecase.MsgUpdateFailed, view)
		return
	}

	utils.ResponseSuccess(w, "Réservation confirmée", view)
}

// Cancel handles POST /api/dashboard/reservations/{id}/cancel (admin only)
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Cancel(r.Context(), visitorID(r), staffSession(r), reservationID(r))
	if err != nil {
		respondError(w, h.log, err, "cancel reservation", usecase.MsgUpdateFailed, view)
		return
	}

	utils.ResponseSuccess(w, "Réservation annulée", view)
}

// CompletePayment handles POST /api/dashboard/reservations/{id}/complete-payment
func (h *ReservationHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.CompletePayment(r.Context(), visitorID(r), staffSession(r), reservationID(r))
	if err != nil {
		respondError(w, h.log, err, "complete payment", usecase.MsgUpdateFailed, view)
		return
	}

	utils.ResponseSuccess(w, "Paiement complété", view)
}

// OpenPaymentDialog handles POST /api/dashboard/reservations/{id}/payment-dialog
func (h *ReservationHandler) OpenPaymentDialog(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.OpenPaymentDialog(visitorID(r), staffSession(r), reservationID(r))
	if err != nil {
		respondError(w, h.log, err, "open payment dialog", msgNotFound, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// UpdatePaymentDialog handles PUT /api/dashboard/payment-dialog
func (h *ReservationHandler) UpdatePaymentDialog(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentDialogRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.UpdatePaymentDialog(visitorID(r), staffSession(r), &req)
	if err != nil {
		respondError(w, h.log, err, "update payment dialog", msgNotFound, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// CommitPaymentDialog handles POST /api/dashboard/payment-dialog/commit
func (h *ReservationHandler) CommitPaymentDialog(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.CommitPaymentDialog(r.Context(), visitorID(r), staffSession(r))
	if err != nil {
		respondError(w, h.log, err, "record payment", usecase.MsgUpdateFailed, view)
		return
	}

	utils.ResponseSuccess(w, "Paiement enregistré", view)
}

// ClosePaymentDialog handles DELETE /api/dashboard/payment-dialog
func (h *ReservationHandler) ClosePaymentDialog(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.ClosePaymentDialog(visitorID(r), staffSession(r)))
}

func reservationID(r *http.Request) entity.ID {
	return entity.ID(chi.URLParam(r, "id"))
}
