package adaptor

import (
	"net/http"

	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/usecase"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

const msgManagerFailed = "La création du gestionnaire a échoué"

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// List handles GET /api/dashboard/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.List(r.Context(), visitorID(r), staffSession(r))
	if err != nil {
		respondError(w, h.log, err, "list users", usecase.MsgConnectivity, view)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// CreateManager handles POST /api/dashboard/users
func (h *UserHandler) CreateManager(w http.ResponseWriter, r *http.Request) {
	var req request.CreateManagerRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	view, err := h.service.CreateManager(r.Context(), visitorID(r), staffSession(r), &req)
	if err != nil {
		respondError(w, h.log, err, "create manager", msgManagerFailed, view)
		return
	}

	utils.ResponseCreated(w, usecase.MsgManagerCreated, view)
}
