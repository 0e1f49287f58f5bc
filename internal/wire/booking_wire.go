package wire

import (
	"pitch-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireBooking registers the public booking wizard; no authentication.
func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/booking", func(r chi.Router) {
		r.Get("/", bookingHandler.View)
		r.Put("/field-type", bookingHandler.SetFieldType)
		r.Put("/date", bookingHandler.SetDate)
		r.Post("/slot", bookingHandler.SelectSlot)
		r.Post("/continue", bookingHandler.Continue)
		r.Post("/back", bookingHandler.Back)
		r.Put("/contact", bookingHandler.UpdateContact)
		r.Post("/phone/blur", bookingHandler.BlurPhone)
		r.Post("/submit", bookingHandler.Submit)
		r.Post("/acknowledge", bookingHandler.Acknowledge)
	})
}
