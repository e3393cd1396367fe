package facturation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation des lignes avant calcul, utilisée aux frontières de l'API.
// Sans effet de bord : retourne la liste agrégée des erreurs (indexées à
// partir de 1, lisibles par l'utilisateur) au lieu de s'arrêter à la première.

// ValidateItem vérifie une ligne. index est la position 1-indexée affichée
// dans les messages.
func ValidateItem(item LineItem, index int) []string {
	var errs []string
	if strings.TrimSpace(item.Description) == "" {
		errs = append(errs, fmt.Sprintf("ligne %d : description requise", index))
	}
	if !item.Quantity.GreaterThan(decimal.Zero) {
		errs = append(errs, fmt.Sprintf("ligne %d : quantité strictement positive requise", index))
	}
	if item.UnitPriceHT.IsNegative() {
		errs = append(errs, fmt.Sprintf("ligne %d : prix unitaire HT négatif", index))
	}
	if item.VATRate == nil || item.VATRate.IsNegative() {
		errs = append(errs, fmt.Sprintf("ligne %d : taux de TVA requis et positif ou nul", index))
	}
	if outOfPercentRange(item.DiscountPercent) {
		errs = append(errs, fmt.Sprintf("ligne %d : remise hors bornes [0,100]", index))
	}
	if outOfPercentRange(item.MarkupPercent) {
		errs = append(errs, fmt.Sprintf("ligne %d : majoration hors bornes [0,100]", index))
	}
	if outOfPercentRange(item.SurchargePercent) {
		errs = append(errs, fmt.Sprintf("ligne %d : majoration (champ hérité) hors bornes [0,100]", index))
	}
	return errs
}

// ValidateItems agrège les erreurs de toutes les lignes.
// Liste vide = lignes valides.
func ValidateItems(items []LineItem) []string {
	var errs []string
	for i, item := range items {
		errs = append(errs, ValidateItem(item, i+1)...)
	}
	return errs
}

func outOfPercentRange(p decimal.Decimal) bool {
	return p.IsNegative() || p.GreaterThan(cent)
}
