package request

import (
	"bytes"
	"encoding/json"
)

// FormValue is an input that the page may send as a JSON string or number.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// CreateFieldRequest comes from a form; pricePerHour is coerced to a number by the service.
type CreateFieldRequest struct {
	Name         string    `json:"name" validate:"notblank"`
	Description  string    `json:"description"`
	Type         FormValue `json:"type" validate:"required,oneof=5 7 11"`
	PricePerHour FormValue `json:"pricePerHour" validate:"required"`
}

type DashboardTabRequest struct {
	Tab string `json:"tab" validate:"required,oneof=all creneaux reservations terrain users"`
}
