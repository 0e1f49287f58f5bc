package utils

import "testing"

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"77 123 45 67", "771234567"},
		{"77-123-45-67", "771234567"},
		{"7712345678999", "771234567"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizePhone(tt.in); got != tt.want {
			t.Errorf("SanitizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"771234567", true},
		{"331234567", true},
		{"571234567", false},
		{"77123456", false},
		{"7712345678", false},
		{"77123456a", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidPhone(tt.in); got != tt.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithCountryCode(t *testing.T) {
	if got := WithCountryCode("+221", "771234567"); got != "+221771234567" {
		t.Fatalf("got %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"15000", 15000, true},
		{" 15 000 ", 15000, true},
		{"12,5", 12.5, true},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseAmount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	type form struct {
		Name     string `json:"name" validate:"notblank"`
		Password string `json:"password" validate:"required,min=6"`
	}

	errs := ValidateStruct(&form{Name: "   ", Password: "abc"})
	if errs["name"] != "Ce champ est obligatoire" {
		t.Errorf("name error = %q", errs["name"])
	}
	if errs["password"] != "Longueur minimale : 6" {
		t.Errorf("password error = %q", errs["password"])
	}

	if errs := ValidateStruct(&form{Name: "Awa", Password: "secret"}); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"phone": "b", "name": "a"})
	if got != "name: a; phone: b" {
		t.Fatalf("got %q", got)
	}
}
