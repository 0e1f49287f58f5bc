package entity

// Slot is one bookable interval of a field on the queried date. It is recomputed per query.
type Slot struct {
	FieldID      ID        `json:"fieldId"`
	FieldName    string    `json:"fieldName"`
	Type         FieldType `json:"type"`
	PricePerHour Amount    `json:"pricePerHour"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
}

// Matches identifies a slot by its field and start time.
func (s Slot) Matches(fieldID ID, startTime string) bool {
	return s.FieldID == fieldID && s.StartTime == startTime
}
