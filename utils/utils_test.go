package utils

import (
	"strings"
	"testing"
)

func TestFormatCurrencyINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Rs 0.00"},
		{42.5, "Rs 42.50"},
		{999, "Rs 999.00"},
		{1000, "Rs 1,000.00"},
		{15000.50, "Rs 15,000.50"},
		{100000, "Rs 1,00,000.00"},
		{1234567.89, "Rs 12,34,567.89"},
		{12345678, "Rs 1,23,45,678.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrencyINR(tt.amount); got != tt.want {
			t.Errorf("FormatCurrencyINR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestGenerateBookingReference(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := GenerateBookingReference()
		if !strings.HasPrefix(ref, "HSP-") {
			t.Fatalf("reference %q missing prefix", ref)
		}
		if len(ref) != 12 {
			t.Fatalf("reference %q has length %d, want 12", ref, len(ref))
		}
		if ref != strings.ToUpper(ref) {
			t.Fatalf("reference %q not upper case", ref)
		}
		seen[ref] = true
	}
	if len(seen) < 95 {
		t.Fatalf("references collide far too often: %d unique of 100", len(seen))
	}
}

func TestTokenRoundTripAndBlacklist(t *testing.T) {
	token, err := GenerateToken(7, "frontdesk")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "frontdesk" {
		t.Fatalf("claims = %+v", claims)
	}

	BlacklistToken(token)
	if _, err := ParseToken(token); err == nil {
		t.Fatal("blacklisted token still parses")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
