package response

import "pitch-booking/internal/data/entity"

type FieldView struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Type         entity.FieldType `json:"type"`
	PricePerHour float64          `json:"pricePerHour"`
}

type RowActions struct {
	CanConfirm         bool `json:"canConfirm"`
	CanCancel          bool `json:"canCancel"`
	CanCompletePayment bool `json:"canCompletePayment"`
	CanRecordPayment   bool `json:"canRecordPayment"`
}

type ReservationRow struct {
	ID            string                   `json:"id"`
	FieldID       string                   `json:"fieldId"`
	FieldName     string                   `json:"fieldName"`
	FieldType     entity.FieldType         `json:"fieldType"`
	Date          string                   `json:"date"`
	StartTime     string                   `json:"startTime"`
	EndTime       string                   `json:"endTime"`
	CustomerName  string                   `json:"customerName"`
	CustomerPhone string                   `json:"customerPhone"`
	CustomerEmail string                   `json:"customerEmail,omitempty"`
	Address       string                   `json:"address,omitempty"`
	Status        entity.ReservationStatus `json:"status"`
	PaymentMethod *entity.PaymentMethod    `json:"paymentMethod"`
	PaymentStatus entity.PaymentStatus     `json:"paymentStatus"`
	PaidAmount    float64                  `json:"paidAmount"`
	TotalPrice    float64                  `json:"totalPrice"`
	Actions       RowActions               `json:"actions"`
}

type ReservationFilters struct {
	Type entity.FieldType `json:"type"`
	Date string           `json:"date"`
}

type PaymentDialogView struct {
	ReservationID string               `json:"reservationId"`
	CustomerName  string               `json:"customerName"`
	TotalPrice    float64              `json:"totalPrice"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod"`
	Mode          string               `json:"mode"`
	Amount        float64              `json:"amount"`
}

type ReservationListView struct {
	Filters ReservationFilters `json:"filters"`
	Rows    []ReservationRow   `json:"rows"`
	Total   int                `json:"total"`
	Fields  []FieldView        `json:"fields"`
	Dialog  *PaymentDialogView `json:"dialog,omitempty"`
}

type FieldPanelView struct {
	Fields []FieldView `json:"fields"`
	// Prompt is set when a delete waits for confirmation.
	Prompt string `json:"prompt,omitempty"`
}

type ManagerFormView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UserPanelView struct {
	Users  []UserView        `json:"users"`
	Form   ManagerFormView   `json:"form"`
	Notice string            `json:"notice,omitempty"`
	Error  string            `json:"error,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

type DashboardView struct {
	Role         entity.UserRole      `json:"role"`
	ActiveTab    string               `json:"activeTab"`
	Tabs         []string             `json:"tabs"`
	Sections     []string             `json:"sections"`
	Reservations *ReservationListView `json:"reservations,omitempty"`
	Assisted     *AssistedView        `json:"assisted,omitempty"`
	Fields       *FieldPanelView      `json:"fields,omitempty"`
	Users        *UserPanelView       `json:"users,omitempty"`
}

func FieldToView(f entity.Field) FieldView {
	return FieldView{
		ID:           f.ID.String(),
		Name:         f.Name,
		Description:  f.Description,
		Type:         f.Type,
		PricePerHour: f.PricePerHour.Float(),
	}
}

func FieldsToView(fields []entity.Field) []FieldView {
	out := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldToView(f))
	}
	return out
}

// ReservationToRow flattens a reservation; actions are decided by the caller.
func ReservationToRow(r entity.Reservation, actions RowActions) ReservationRow {
	return ReservationRow{
		ID:            r.ID.String(),
		FieldID:       r.Field.ID.String(),
		FieldName:     r.Field.Name,
		FieldType:     r.Field.Type,
		Date:          r.Day(),
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Address:       r.Address,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		PaymentStatus: r.PaymentStatus,
		PaidAmount:    r.PaidAmount.Float(),
		TotalPrice:    r.TotalPrice.Float(),
		Actions:       actions,
	}
}
