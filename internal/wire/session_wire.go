package wire

import (
	"pitch-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSession(r chi.Router, sessionHandler *adaptor.SessionHandler) {
	r.Get("/session", sessionHandler.Get)
	r.Post("/session/login", sessionHandler.Login)
	r.Post("/session/logout", sessionHandler.Logout)
}
