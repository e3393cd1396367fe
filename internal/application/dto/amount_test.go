package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amountPayload struct {
	Value Amount `json:"value"`
}

// Le type Amount est tolérant : nombre, chaîne numérique, virgule française,
// et toute valeur illisible coercée à zéro (comportement hérité des
// formulaires du front).
func TestAmount_UnmarshalTolerant(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"nombre", `{"value": 33.33}`, "33.33"},
		{"chaîne numérique", `{"value": "33.33"}`, "33.33"},
		{"virgule française", `{"value": "33,33"}`, "33.33"},
		{"espaces de groupement", `{"value": "1 250,50"}`, "1250.50"},
		{"null", `{"value": null}`, "0"},
		{"chaîne vide", `{"value": ""}`, "0"},
		{"texte illisible", `{"value": "abc"}`, "0"},
		{"booléen", `{"value": true}`, "0"},
		{"champ absent", `{}`, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p amountPayload
			require.NoError(t, json.Unmarshal([]byte(tt.json), &p))
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, p.Value.Decimal.Equal(want), "obtenu %s, attendu %s", p.Value.Decimal, want)
		})
	}
}

// ParseAmount est la variante stricte : une valeur illisible est une erreur,
// jamais un zéro silencieux. Utilisée pour les montants d'encaissement.
func TestParseAmount_Strict(t *testing.T) {
	got, err := ParseAmount(`"1 024,99"`)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("1024.99")))

	got, err = ParseAmount("250.10")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("250.10")))

	_, err = ParseAmount(`"abc"`)
	assert.Error(t, err, "une valeur illisible doit être rejetée, pas coercée")

	got, err = ParseAmount("null")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.Zero))
}
