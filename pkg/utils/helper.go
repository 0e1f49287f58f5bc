package utils

import (
	"math"
	"strconv"
	"strings"
)

// PhoneLength is the number of national digits of a Senegalese mobile number.
const PhoneLength = 9

// SanitizePhone keeps digits only and truncates to PhoneLength.
func SanitizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == PhoneLength {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone reports whether p is exactly 9 digits starting with 7 or 3.
func IsValidPhone(p string) bool {
	if len(p) != PhoneLength {
		return false
	}
	if p[0] != '7' && p[0] != '3' {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// WithCountryCode prefixes a national number, e.g. "+221" + "771234567".
func WithCountryCode(code, phone string) string {
	return code + phone
}

// ParseAmount coerces a form value into a number, accepting "15 000" or "15000,5".
func ParseAmount(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
