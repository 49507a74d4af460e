package forms

import (
	"fmt"
	"strings"
)

// Display masks for Brazilian identifiers. Each mask is progressive: partial
// input is formatted as far as the digits go, and input longer than the
// document is truncated. All masks are idempotent over their own output.

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskCNPJ formats a CNPJ as NN.NNN.NNN/NNNN-NN.
func MaskCNPJ(s string) string {
	d := Digits(s)
	if len(d) > 14 {
		d = d[:14]
	}
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 5:
		return fmt.Sprintf("%s.%s", d[:2], d[2:])
	case len(d) <= 8:
		return fmt.Sprintf("%s.%s.%s", d[:2], d[2:5], d[5:])
	case len(d) <= 12:
		return fmt.Sprintf("%s.%s.%s/%s", d[:2], d[2:5], d[5:8], d[8:])
	default:
		return fmt.Sprintf("%s.%s.%s/%s-%s", d[:2], d[2:5], d[5:8], d[8:12], d[12:])
	}
}

// MaskCPF formats a CPF as NNN.NNN.NNN-NN.
func MaskCPF(s string) string {
	d := Digits(s)
	if len(d) > 11 {
		d = d[:11]
	}
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return fmt.Sprintf("%s.%s", d[:3], d[3:])
	case len(d) <= 9:
		return fmt.Sprintf("%s.%s.%s", d[:3], d[3:6], d[6:])
	default:
		return fmt.Sprintf("%s.%s.%s-%s", d[:3], d[3:6], d[6:9], d[9:])
	}
}

// MaskCEP formats a CEP as NNNNN-NNN.
func MaskCEP(s string) string {
	d := Digits(s)
	if len(d) > 8 {
		d = d[:8]
	}
	if len(d) <= 5 {
		return d
	}
	return fmt.Sprintf("%s-%s", d[:5], d[5:])
}

// MaskPhoneBR formats a Brazilian phone number. Numbers carrying the 55
// country code (12 or 13 digits) have it stripped first. Landlines (10
// digits) come out as (NN) NNNN-NNNN and mobiles (11 digits) as
// (NN) N NNNN-NNNN. Anything else is returned unchanged.
func MaskPhoneBR(s string) string {
	d := Digits(s)
	if (len(d) == 12 || len(d) == 13) && strings.HasPrefix(d, "55") {
		d = d[2:]
	}
	switch len(d) {
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	case 11:
		return fmt.Sprintf("(%s) %s %s-%s", d[:2], d[2:3], d[3:7], d[7:])
	default:
		return s
	}
}

// MaskUF uppercases and truncates a state abbreviation to two letters.
func MaskUF(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == 2 {
				break
			}
		}
	}
	return b.String()
}
