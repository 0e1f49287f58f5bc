package response

import "pitch-booking/internal/data/entity"

type SlotView struct {
	FieldID      string           `json:"fieldId"`
	FieldName    string           `json:"fieldName"`
	Type         entity.FieldType `json:"type"`
	PricePerHour float64          `json:"pricePerHour"`
	StartTime    string           `json:"startTime"`
	EndTime      string           `json:"endTime"`
	Selected     bool             `json:"selected"`
}

type ContactView struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// BookingView is the public booking wizard.
type BookingView struct {
	Step           string            `json:"step"`
	FieldType      entity.FieldType  `json:"fieldType"`
	Date           string            `json:"date"`
	Slots          []SlotView        `json:"slots"`
	SelectedSlot   *SlotView         `json:"selectedSlot,omitempty"`
	Contact        ContactView       `json:"contact"`
	Errors         map[string]string `json:"errors,omitempty"`
	PaymentEnabled bool              `json:"paymentEnabled"`
	SuccessOverlay bool              `json:"successOverlay"`
	Loading        bool              `json:"loading"`
	Submitting     bool              `json:"submitting"`
}

// AssistedView is the staff booking form of the dashboard.
type AssistedView struct {
	FieldType     entity.FieldType     `json:"fieldType"`
	Date          string               `json:"date"`
	Loaded        bool                 `json:"loaded"`
	Slots         []SlotView           `json:"slots"`
	SelectedSlot  *SlotView            `json:"selectedSlot,omitempty"`
	Contact       ContactView          `json:"contact"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod"`
	Errors        map[string]string    `json:"errors,omitempty"`
	Notice        string               `json:"notice,omitempty"`
	Loading       bool                 `json:"loading"`
	Submitting    bool                 `json:"submitting"`
}

func SlotToView(s entity.Slot, selected *entity.Slot) SlotView {
	return SlotView{
		FieldID:      s.FieldID.String(),
		FieldName:    s.FieldName,
		Type:         s.Type,
		PricePerHour: s.PricePerHour.Float(),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Selected:     selected != nil && s.Matches(selected.FieldID, selected.StartTime),
	}
}

func SlotsToView(slots []entity.Slot, selected *entity.Slot) []SlotView {
	out := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotToView(s, selected))
	}
	return out
}
