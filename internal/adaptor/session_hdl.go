package adaptor

import (
	"errors"
	"net/http"

	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/dto/response"
	"pitch-booking/internal/usecase"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

type SessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service usecase.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "session")),
	}
}

// Get handles GET /api/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Current(r.Context(), visitorID(r))
	if err != nil {
		respondError(w, h.log, err, "restore session", usecase.MsgConnectivity, response.SessionToView(nil))
		return
	}

	utils.ResponseSuccess(w, "success", response.SessionToView(session))
}

// Login handles POST /api/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	session, err := h.service.Login(r.Context(), visitorID(r), &req)
	if errors.Is(err, usecase.ErrNotStaff) {
		// customer accounts simply stay on the public page
		utils.ResponseSuccess(w, "success", response.SessionToView(nil))
		return
	}
	if err != nil {
		respondError(w, h.log, err, "login", usecase.MsgConnectivity, response.SessionToView(nil))
		return
	}

	utils.ResponseSuccess(w, "Connexion réussie", response.SessionToView(session))
}

// Logout handles POST /api/session/logout. The visitor ends anonymous either way.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), visitorID(r)); err != nil {
		h.log.Warn("Logout left persisted keys behind", zap.Error(err))
	}

	utils.ResponseSuccess(w, "Déconnexion réussie", response.SessionToView(nil))
}
