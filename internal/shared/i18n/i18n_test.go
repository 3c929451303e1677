package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header string
		want   Lang
	}{
		{"", EN},
		{"fr-FR,fr;q=0.9,en;q=0.8", FR},
		{"en-US,en;q=0.9", EN},
		{"de-DE", EN},
		{"ar-DZ,fr;q=0.7", FR},
		{"not a header;;", EN},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.header))
		})
	}
}

func TestTranslateFallsBack(t *testing.T) {
	assert.Equal(t, "La ressource demandée est introuvable", T(FR, "not_found", "x"))
	assert.Equal(t, "The requested resource was not found", T(EN, "not_found", "x"))
	assert.Equal(t, "Logged out", T(Lang("es"), "logged_out", "x"))
	assert.Equal(t, "fallback", T(FR, "missing.key", "fallback"))
}

func TestColumnLabels(t *testing.T) {
	assert.Equal(t, "Nom du laboratoire", Column(FR, "lab_name", "Laboratory name"))
	assert.Equal(t, "Laboratory name", Column(EN, "lab_name", "Laboratory name"))
}

func TestParseLang(t *testing.T) {
	assert.Equal(t, FR, ParseLang("fr"))
	assert.Equal(t, EN, ParseLang("zh"))
}
