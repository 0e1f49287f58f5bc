package request

type FieldTypeRequest struct {
	Type FormValue `json:"type" validate:"required,oneof=5 7 11 all"`
}

type DateRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type SelectSlotRequest struct {
	FieldID   string `json:"fieldId" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
}

// ContactRequest is the customer part of a booking form. Phone may contain spaces or a prefix.
type ContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type SubmitBookingRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=wave orange_money"`
}

// AssistedQueryRequest sets the date and type of the staff booking form.
type AssistedQueryRequest struct {
	Date string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type FormValue `json:"type" validate:"omitempty,oneof=5 7 11 all"`
}

type SubmitAssistedRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=wave orange_money cash"`
}
