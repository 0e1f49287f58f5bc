package adaptor

import (
	"net/http"

	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/usecase"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "dashboard")),
	}
}

// View handles GET /api/dashboard
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.View(r.Context(), visitorID(r), staffSession(r))
	if err != nil {
		respondError(w, h.log, err, "load dashboard", usecase.MsgConnectivity, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// SetTab handles PUT /api/dashboard/tab
func (h *DashboardHandler) SetTab(w http.ResponseWriter, r *http.Request) {
	var req request.DashboardTabRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.SetTab(visitorID(r), staffSession(r), usecase.Tab(req.Tab))
	if err != nil {
		respondError(w, h.log, err, "switch tab", msgForbidden, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}
