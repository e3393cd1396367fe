package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount montant JSON tolérant pour les lignes de document : accepte un
// nombre, une chaîne numérique ("33.33", "33,33" à la française) et coerce
// toute valeur illisible à zéro au lieu d'échouer.
//
// Cette tolérance est un comportement hérité dont dépendent les formulaires
// du front (une cellule vidée devient 0, pas une erreur). Elle est réservée
// aux lignes de saisie : les montants d'encaissement utilisent ParseAmount,
// strict.
type Amount struct {
	decimal.Decimal
}

// NewAmount construit un Amount depuis un decimal (tests et conversions).
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON implémente la coercition tolérante.
func (a *Amount) UnmarshalJSON(data []byte) error {
	d, err := ParseAmount(string(data))
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// ParseAmount analyse strictement un montant JSON brut : nombre ou chaîne
// numérique (virgule décimale acceptée). Retourne une erreur au lieu de
// coercer — à utiliser partout où un zéro silencieux serait dangereux.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" {
		return decimal.Zero, nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	// Saisie française : virgule décimale, espaces de groupement.
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
