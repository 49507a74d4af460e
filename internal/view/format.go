package view

import "github.com/mudancafacil/mf-webclient-go/internal/forms"

// Template helpers. Stored values are digits-only; pages show them masked.

func maskCNPJ(s string) string {
	return forms.MaskCNPJ(s)
}

func maskPhone(s string) string {
	return forms.MaskPhoneBR(s)
}
