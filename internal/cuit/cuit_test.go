package cuit

import "testing"

func TestValid(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"20-12345678-6", true},  // verifier 6 under the standard weights
		{"20123456786", true},    // separators are optional
		{"20.12345678.6", true},  // dots accepted as separators
		{"20-12345678-7", false}, // wrong check digit
		{"20-12345679-6", false}, // single mutated digit flips validity
		{"21-12345678-6", false},
		{"20-1234567-6", false},  // too short
		{"20-123456789-6", false}, // too long
		{"", false},
		{"abc", false},
		{"20-00000001-9", true}, // verifier 10 maps to 9
		{"27-00000003-0", true}, // verifier 11 maps to 0
	}
	for _, c := range cases {
		if got := Valid(c.raw); got != c.want {
			t.Errorf("Valid(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestCheckDigitMutationFlips(t *testing.T) {
	const base = "20123456786"
	// Mutating any single digit of the payload must invalidate the CUIT.
	for i := 0; i < 10; i++ {
		b := []byte(base)
		b[i] = '0' + (b[i]-'0'+1)%10
		if Valid(string(b)) {
			t.Errorf("mutated CUIT %s unexpectedly valid", b)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(" 20-12345678-6 "); got != "20123456786" {
		t.Errorf("Normalize returned %q", got)
	}
	if got := Normalize("no digits"); got != "" {
		t.Errorf("Normalize returned %q for digit-free input", got)
	}
}
