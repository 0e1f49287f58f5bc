package request

type ReservationFiltersRequest struct {
	Type FormValue `json:"type" validate:"omitempty,oneof=5 7 11 all"`
	Date string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type PaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=wave orange_money cash"`
}

type PaymentDialogRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=wave orange_money cash"`
	Mode          string `json:"mode" validate:"required,oneof=full half"`
}
