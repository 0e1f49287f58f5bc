package entity

import "math"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentWave        PaymentMethod = "wave"
	PaymentOrangeMoney PaymentMethod = "orange_money"
	PaymentCash        PaymentMethod = "cash"
	PaymentAdmin       PaymentMethod = "admin"
)

type PaymentStatus string

const (
	PaymentUnpaid    PaymentStatus = "unpaid"
	PaymentPartial   PaymentStatus = "partial"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// HasPayment is true once money was recorded against a reservation.
func (s PaymentStatus) HasPayment() bool {
	return s == PaymentPartial || s == PaymentPaid
}

type Reservation struct {
	ID            ID                `json:"id"`
	Field         FieldRef          `json:"field"`
	Date          string            `json:"date"`
	StartTime     string            `json:"startTime"`
	EndTime       string            `json:"endTime"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	Address       string            `json:"address,omitempty"`
	Status        ReservationStatus `json:"status"`
	PaymentMethod *PaymentMethod    `json:"paymentMethod"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	PaidAmount    Amount            `json:"paidAmount"`
	TotalPrice    Amount            `json:"totalPrice"`
}

// Day is the calendar day of the reservation, "2025-06-01" for "2025-06-01T00:00:00.000Z".
func (r *Reservation) Day() string {
	if len(r.Date) >= 10 {
		return r.Date[:10]
	}
	return r.Date
}

func (r *Reservation) CanConfirm() bool {
	return r.Status != ReservationConfirmed
}

// CanCancel is false once a payment was recorded; the API does not guard this.
func (r *Reservation) CanCancel() bool {
	return !r.PaymentStatus.HasPayment()
}

// CanRecordPayment is false on cancelled reservations.
func (r *Reservation) CanRecordPayment() bool {
	return r.Status != ReservationCancelled
}

func (r *Reservation) CanCompletePayment() bool {
	return r.PaymentStatus == PaymentPartial
}

// HalfAmount is the deposit for a half payment: round(totalPrice/2), halves rounded up.
func (r *Reservation) HalfAmount() Amount {
	return Amount(math.Floor(float64(r.TotalPrice)/2 + 0.5))
}
