package facturation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Toutes les erreurs sont agrégées, indexées à partir de 1, au lieu de
// s'arrêter à la première ligne fautive.
func TestValidateItems_ErreursAgregees(t *testing.T) {
	errs := ValidateItems([]LineItem{
		{Description: "Placo", Quantity: d(t, "2"), UnitPriceHT: d(t, "12.50"), VATRate: rate(t, "20")},
		{Description: "", Quantity: d(t, "0"), UnitPriceHT: d(t, "-3"), VATRate: nil},
		{Description: "Peinture", Quantity: d(t, "1"), UnitPriceHT: d(t, "40"), VATRate: rate(t, "10"), DiscountPercent: d(t, "120")},
	})

	assert.Len(t, errs, 5)
	assert.Contains(t, errs, "ligne 2 : description requise")
	assert.Contains(t, errs, "ligne 2 : quantité strictement positive requise")
	assert.Contains(t, errs, "ligne 2 : prix unitaire HT négatif")
	assert.Contains(t, errs, "ligne 2 : taux de TVA requis et positif ou nul")
	assert.Contains(t, errs, "ligne 3 : remise hors bornes [0,100]")
}

func TestValidateItems_LignesValides(t *testing.T) {
	errs := ValidateItems([]LineItem{
		{Description: "Dalle béton", Quantity: d(t, "4.5"), UnitPriceHT: d(t, "89.90"), VATRate: rate(t, "10")},
	})
	assert.Empty(t, errs)
}

// Un taux de TVA à 0 est valide (autoliquidation) ; négatif, non.
func TestValidateItem_TVAZeroValide(t *testing.T) {
	ok := LineItem{Description: "Sous-traitance", Quantity: d(t, "1"), UnitPriceHT: d(t, "500"), VATRate: rate(t, "0")}
	assert.Empty(t, ValidateItem(ok, 1))

	ko := ok
	ko.VATRate = rate(t, "-1")
	errs := ValidateItem(ko, 1)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "taux de TVA")
}

// La majoration héritée (surcharge) est bornée comme les autres pourcentages.
func TestValidateItem_AliasSurchargeHorsBornes(t *testing.T) {
	item := LineItem{
		Description: "Zinguerie", Quantity: d(t, "1"), UnitPriceHT: d(t, "100"),
		VATRate: rate(t, "20"), SurchargePercent: d(t, "101"),
	}
	errs := ValidateItem(item, 4)
	assert.Len(t, errs, 1)
	assert.Equal(t, "ligne 4 : majoration (champ hérité) hors bornes [0,100]", errs[0])
}
