package entity

import (
	"encoding/json"
	"testing"
)

func TestHalfAmountRoundsHalfUp(t *testing.T) {
	tests := []struct {
		total Amount
		want  Amount
	}{
		{30000, 15000},
		{30001, 15001},
		{25000, 12500},
		{1, 1},
		{0, 0},
	}

	for _, tt := range tests {
		r := Reservation{TotalPrice: tt.total}
		if got := r.HalfAmount(); got != tt.want {
			t.Errorf("HalfAmount(%v) = %v, want %v", tt.total, got, tt.want)
		}
	}
}

func TestReservationActions(t *testing.T) {
	tests := []struct {
		name         string
		r            Reservation
		wantConfirm  bool
		wantCancel   bool
		wantComplete bool
	}{
		{"pending unpaid", Reservation{Status: ReservationPending, PaymentStatus: PaymentUnpaid}, true, true, false},
		{"confirmed partial", Reservation{Status: ReservationConfirmed, PaymentStatus: PaymentPartial}, false, false, true},
		{"pending paid", Reservation{Status: ReservationPending, PaymentStatus: PaymentPaid}, true, false, false},
		{"cancelled", Reservation{Status: ReservationCancelled, PaymentStatus: PaymentCancelled}, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.CanConfirm(); got != tt.wantConfirm {
				t.Errorf("CanConfirm = %v", got)
			}
			if got := tt.r.CanCancel(); got != tt.wantCancel {
				t.Errorf("CanCancel = %v", got)
			}
			if got := tt.r.CanCompletePayment(); got != tt.wantComplete {
				t.Errorf("CanCompletePayment = %v", got)
			}
		})
	}
}

func TestReservationDecodesLooseJSON(t *testing.T) {
	raw := `{
		"id": 42,
		"field": 7,
		"date": "2025-06-01T00:00:00.000Z",
		"startTime": "18:00",
		"endTime": "19:00",
		"customerName": "Awa",
		"status": "pending",
		"paymentMethod": null,
		"paymentStatus": "unpaid",
		"paidAmount": null,
		"totalPrice": "30000.00"
	}`

	var r Reservation
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if r.ID != "42" {
		t.Errorf("ID = %q", r.ID)
	}
	if r.Field.ID != "7" || r.Field.Name != "" {
		t.Errorf("Field = %+v", r.Field)
	}
	if r.Day() != "2025-06-01" {
		t.Errorf("Day = %q", r.Day())
	}
	if r.PaymentMethod != nil {
		t.Errorf("PaymentMethod = %v", *r.PaymentMethod)
	}
	if r.TotalPrice != 30000 {
		t.Errorf("TotalPrice = %v", r.TotalPrice)
	}
}

func TestFieldRefAcceptsEmbeddedObject(t *testing.T) {
	var ref FieldRef
	if err := json.Unmarshal([]byte(`{"id":"f1","name":"Terrain A","type":5,"pricePerHour":"15000"}`), &ref); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ref.ID != "f1" || ref.Name != "Terrain A" || ref.Type != FieldType5 || ref.PricePerHour != 15000 {
		t.Fatalf("got %+v", ref.Field)
	}
}

func TestFieldTypeIsConcrete(t *testing.T) {
	for _, ft := range []FieldType{FieldType5, FieldType7, FieldType11} {
		if !ft.IsConcrete() {
			t.Errorf("%q should be concrete", ft)
		}
	}
	for _, ft := range []FieldType{FieldTypeAny, "", "9"} {
		if ft.IsConcrete() {
			t.Errorf("%q should not be concrete", ft)
		}
	}
}

func TestSessionRoles(t *testing.T) {
	var nilSession *Session
	if nilSession.IsStaff() || nilSession.IsAdmin() {
		t.Fatal("nil session must be anonymous")
	}

	manager := &Session{Token: "t", User: User{Role: RoleManager}}
	if !manager.IsStaff() || manager.IsAdmin() {
		t.Errorf("manager: staff=%v admin=%v", manager.IsStaff(), manager.IsAdmin())
	}

	customer := &Session{Token: "t", User: User{Role: RoleCustomer}}
	if customer.IsStaff() {
		t.Error("customer must not be staff")
	}

	noToken := &Session{User: User{Role: RoleAdmin}}
	if noToken.IsStaff() {
		t.Error("a profile without token must not be trusted")
	}
}
