package wire

import (
	"pitch-booking/internal/adaptor"
	"pitch-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDashboard(
	r chi.Router,
	handler *adaptor.Handler,
	sessions middleware.SessionSource,
	log *zap.Logger,
) {
	r.Route("/dashboard", func(r chi.Router) {
		// ==================== STAFF ROUTES ====================
		r.Use(middleware.RequireStaff(sessions, log))

		r.Get("/", handler.Dashboard.View)
		r.Put("/tab", handler.Dashboard.SetTab)

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", handler.Reservation.List)
			r.Post("/refresh", handler.Reservation.Refresh)
			r.Put("/filters", handler.Reservation.SetFilters)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/payment-method", handler.Reservation.SetPaymentMethod)
				r.Post("/confirm", handler.Reservation.Confirm)
				r.With(middleware.RequireAdmin(log)).Post("/cancel", handler.Reservation.Cancel)
				r.Post("/complete-payment", handler.Reservation.CompletePayment)
				r.Post("/payment-dialog", handler.Reservation.OpenPaymentDialog)
			})
		})

		r.Route("/payment-dialog", func(r chi.Router) {
			r.Put("/", handler.Reservation.UpdatePaymentDialog)
			r.Post("/commit", handler.Reservation.CommitPaymentDialog)
			r.Delete("/", handler.Reservation.ClosePaymentDialog)
		})

		r.Route("/assisted", func(r chi.Router) {
			r.Get("/", handler.Assisted.View)
			r.Put("/query", handler.Assisted.SetQuery)
			r.Post("/load", handler.Assisted.LoadSlots)
			r.Post("/slot", handler.Assisted.SelectSlot)
			r.Put("/contact", handler.Assisted.UpdateContact)
			r.Post("/submit", handler.Assisted.Submit)
		})

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(log))

			r.Get("/fields", handler.Field.List)
			r.Post("/fields", handler.Field.Create)
			r.Delete("/fields/{id}", handler.Field.Delete)

			r.Get("/users", handler.User.List)
			r.Post("/users", handler.User.CreateManager)
		})
	})
}
