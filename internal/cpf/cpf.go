// Package cpf validates and formats Brazilian individual taxpayer numbers.
package cpf

import "strings"

// Length is the number of digits in a CPF, check digits included.
const Length = 11

// Valid reports whether s is an 11-digit CPF whose two trailing check
// digits match the weighted mod-11 checksum of the leading nine.
// Sequences of a single repeated digit are rejected even though their
// checksum happens to match.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}

	var digits [Length]int
	allSame := true
	for i := 0; i < Length; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
		if digits[i] != digits[0] {
			allSame = false
		}
	}
	if allSame {
		return false
	}

	return digits[9] == checkDigit(digits[:9]) && digits[10] == checkDigit(digits[:10])
}

// checkDigit computes the next check digit for the given prefix. Weights
// run from len(prefix)+1 down to 2.
func checkDigit(prefix []int) int {
	sum := 0
	weight := len(prefix) + 1
	for _, d := range prefix {
		sum += d * weight
		weight--
	}
	d := 11 - sum%11
	if d >= 10 {
		return 0
	}
	return d
}

// Normalize removes the punctuation CPFs are usually written with
// ("111.444.777-35") as well as spaces. Other characters are kept so that
// Valid still rejects them.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// Format renders an 11-digit CPF as xxx.xxx.xxx-xx. Anything else is
// returned unchanged.
func Format(s string) string {
	if len(s) != Length {
		return s
	}
	return s[:3] + "." + s[3:6] + "." + s[6:9] + "-" + s[9:]
}

// Mask hides the middle digits for public listings: xxx.***.**x-xx.
func Mask(s string) string {
	if len(s) != Length {
		return s
	}
	return s[:3] + ".***.**" + s[8:9] + "-" + s[9:]
}
