package adaptor

import (
	"net/http"
	"strconv"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/usecase"
	"pitch-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const msgFieldFailed = "L'opération sur le terrain a échoué"

type FieldHandler struct {
	service usecase.FieldService
	log     *zap.Logger
}

func NewFieldHandler(service usecase.FieldService, log *zap.Logger) *FieldHandler {
	return &FieldHandler{
		service: service,
		log:     log.With(zap.String("handler", "field")),
	}
}

// List handles GET /api/dashboard/fields
func (h *FieldHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.List(r.Context(), visitorID(r), staffSession(r))
	if err != nil {
		respondError(w, h.log, err, "list fields", usecase.MsgConnectivity, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// Create handles POST /api/dashboard/fields. Validation runs in the service so the
// price coercion error is reported with the others.
func (h *FieldHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFieldRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	view, err := h.service.Create(r.Context(), visitorID(r), staffSession(r), &req)
	if err != nil {
		respondError(w, h.log, err, "create field", msgFieldFailed, view)
		return
	}

	utils.ResponseCreated(w, "Terrain créé", view)
}

// Delete handles DELETE /api/dashboard/fields/{id}?confirm=true
func (h *FieldHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fieldID := chi.URLParam(r, "id")
	if fieldID == "" {
		utils.ResponseBadRequest(w, "Identifiant du terrain requis", nil)
		return
	}

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	view, err := h.service.Delete(r.Context(), visitorID(r), staffSession(r), entity.ID(fieldID), confirmed)
	if err != nil {
		respondError(w, h.log, err, "delete field", msgFieldFailed, view)
		return
	}

	utils.ResponseSuccess(w, "Terrain supprimé", view)
}
