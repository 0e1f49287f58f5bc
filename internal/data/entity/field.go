package entity

import (
	"bytes"
	"encoding/json"
)

// FieldType is the team size a pitch is built for.
type FieldType string

const (
	FieldType5  FieldType = "5"
	FieldType7  FieldType = "7"
	FieldType11 FieldType = "11"
	// FieldTypeAny is the "all types" choice of the selectors; it is never sent to the API.
	FieldTypeAny FieldType = "all"
)

// IsConcrete is true for 5, 7 and 11.
func (t FieldType) IsConcrete() bool {
	switch t {
	case FieldType5, FieldType7, FieldType11:
		return true
	}
	return false
}

// UnmarshalJSON accepts 5 as well as "5".
func (t *FieldType) UnmarshalJSON(b []byte) error {
	var id ID
	if err := id.UnmarshalJSON(b); err != nil {
		return err
	}
	*t = FieldType(id)
	return nil
}

type Field struct {
	ID           ID        `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Type         FieldType `json:"type"`
	PricePerHour Amount    `json:"pricePerHour"`
}

// FieldRef is the field of a reservation, either embedded or just its id.
type FieldRef struct {
	Field
}

func (f *FieldRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		return json.Unmarshal(b, &f.Field)
	}
	return f.Field.ID.UnmarshalJSON(b)
}
