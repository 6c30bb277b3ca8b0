// Package cuit validates Argentine CUIT tax identifiers.  A CUIT is an
// 11 digit number whose last digit is a check digit computed by a
// weighted modulo-11 sum over the first ten digits.
package cuit

// weights applied to the first ten digits, left to right.
var weights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// Normalize strips every non-digit rune (hyphens, dots, spaces) from a
// raw CUIT string.  It performs no length or check-digit validation.
func Normalize(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			out = append(out, raw[i])
		}
	}
	return string(out)
}

// CheckDigit computes the verifier for the first ten digits of a
// normalized CUIT.  The weighted sum is reduced modulo 11 and
// subtracted from 11, mapping 11 to 0 and 10 to 9.  digits must hold at
// least ten ASCII digits; only the first ten are read.
func CheckDigit(digits string) int {
	sum := 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	v := 11 - sum%11
	switch v {
	case 11:
		return 0
	case 10:
		return 9
	}
	return v
}

// Valid reports whether raw is a well-formed CUIT: after stripping
// separators it must contain exactly eleven digits and its eleventh
// digit must equal the computed check digit.
func Valid(raw string) bool {
	d := Normalize(raw)
	if len(d) != 11 {
		return false
	}
	return CheckDigit(d) == int(d[10]-'0')
}
