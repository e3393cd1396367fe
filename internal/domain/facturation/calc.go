package facturation

import "github.com/shopspring/decimal"

// Moteur de calcul des documents (devis, factures, avoirs). Fonctions pures,
// aucune E/S : les montants entrent en decimal et sortent arrondis au centime.
//
// Politique d'arrondi : chaque champ de sortie est arrondi à 2 décimales
// indépendamment, PUIS les totaux de document somment les champs déjà arrondis.
// L'export comptable (FEC) en aval repose sur cet ordre exact — ne pas
// "corriger" en arrondi-après-somme.

var cent = decimal.NewFromInt(100)

// LineItem ligne saisie par l'appelant, jamais persistée telle quelle.
// VATRate est un pointeur : nil signifie "non renseigné" (rejeté à la
// validation, coercé à 0 au calcul).
type LineItem struct {
	Description      string
	Quantity         decimal.Decimal
	UnitPriceHT      decimal.Decimal
	VATRate          *decimal.Decimal
	DiscountPercent  decimal.Decimal
	MarkupPercent    decimal.Decimal
	SurchargePercent decimal.Decimal // alias hérité : utilisé comme majoration si MarkupPercent est à zéro
	SortOrder        int
	SectionID        string
}

// ComputedLineItem ligne calculée, prête à persister.
type ComputedLineItem struct {
	Description     string
	Quantity        decimal.Decimal
	UnitPriceHT     decimal.Decimal
	VATRate         decimal.Decimal
	DiscountPercent decimal.Decimal
	MarkupPercent   decimal.Decimal
	UnitPriceNetHT  decimal.Decimal
	UnitPriceTTC    decimal.Decimal
	TotalHT         decimal.Decimal
	TotalVAT        decimal.Decimal
	TotalTTC        decimal.Decimal
	SortOrder       int
	SectionID       string
}

// DocumentTotals agrégat d'un document : lignes calculées et totaux.
// Invariants : SubtotalHT = Σ TotalHT, TotalTTC = SubtotalHT + TotalVAT.
type DocumentTotals struct {
	Items      []ComputedLineItem
	SubtotalHT decimal.Decimal
	TotalVAT   decimal.Decimal
	TotalTTC   decimal.Decimal
}

// clampPercent ramène un pourcentage dans [0,100]. Les valeurs hors bornes
// sont écrêtées, pas rejetées (la validation, elle, les refuse).
func clampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(cent) {
		return cent
	}
	return p
}

// ComputeItem calcule une ligne :
//
//	unitPriceNetHT = unitPriceHT × (1 − remise/100) × (1 + majoration/100)
//	totalHT        = quantité × unitPriceNetHT (pleine précision, puis arrondi)
//	totalVAT       = totalHT × tva/100
//	totalTTC       = totalHT + totalVAT (somme des champs arrondis)
func ComputeItem(item LineItem) ComputedLineItem {
	discount := clampPercent(item.DiscountPercent)
	markup := item.MarkupPercent
	if markup.IsZero() && !item.SurchargePercent.IsZero() {
		markup = item.SurchargePercent
	}
	markup = clampPercent(markup)

	vat := decimal.Zero
	if item.VATRate != nil {
		vat = *item.VATRate
	}

	one := decimal.NewFromInt(1)
	netUnit := item.UnitPriceHT.
		Mul(one.Sub(discount.Div(cent))).
		Mul(one.Add(markup.Div(cent)))
	ttcUnit := netUnit.Mul(one.Add(vat.Div(cent)))

	// Les totaux partent des valeurs pleine précision : 3 × 33.333 donne
	// 100.00, pas 3 × 33.33 = 99.99.
	totalHT := item.Quantity.Mul(netUnit).Round(2)
	totalVAT := item.Quantity.Mul(netUnit).Mul(vat.Div(cent)).Round(2)

	return ComputedLineItem{
		Description: item.Description,
		Quantity:    item.Quantity,
		// Prix saisi conservé tel quel : un avoir régénéré depuis la ligne
		// persistée doit retomber sur les mêmes totaux au centime près.
		UnitPriceHT:     item.UnitPriceHT,
		VATRate:         vat,
		DiscountPercent: discount,
		MarkupPercent:   markup,
		UnitPriceNetHT:  netUnit.Round(2),
		UnitPriceTTC:    ttcUnit.Round(2),
		TotalHT:         totalHT,
		TotalVAT:        totalVAT,
		TotalTTC:        totalHT.Add(totalVAT),
		SortOrder:       item.SortOrder,
		SectionID:       item.SectionID,
	}
}

// ComputeTotals calcule toutes les lignes puis somme les champs déjà arrondis.
// Entrée nil ou vide : totaux à zéro et liste vide, jamais d'erreur.
func ComputeTotals(items []LineItem) DocumentTotals {
	totals := DocumentTotals{
		Items:      make([]ComputedLineItem, 0, len(items)),
		SubtotalHT: decimal.Zero,
		TotalVAT:   decimal.Zero,
		TotalTTC:   decimal.Zero,
	}
	for _, item := range items {
		computed := ComputeItem(item)
		totals.Items = append(totals.Items, computed)
		totals.SubtotalHT = totals.SubtotalHT.Add(computed.TotalHT)
		totals.TotalVAT = totals.TotalVAT.Add(computed.TotalVAT)
	}
	totals.SubtotalHT = totals.SubtotalHT.Round(2)
	totals.TotalVAT = totals.TotalVAT.Round(2)
	totals.TotalTTC = totals.SubtotalHT.Add(totals.TotalVAT)
	return totals
}

// NegateItems retourne les lignes avec quantités négées, pour générer un avoir
// à partir des lignes d'une facture. Le recalcul passe par ComputeTotals.
func NegateItems(items []LineItem) []LineItem {
	negated := make([]LineItem, len(items))
	for i, item := range items {
		negated[i] = item
		negated[i].Quantity = item.Quantity.Neg()
	}
	return negated
}

// AdvanceBreakdown décompose un montant d'acompte TTC en HT et TVA à taux fixe.
//
//	ht  = ttc / (1 + taux/100)
//	tva = ttc − ht
func AdvanceBreakdown(amountTTC, vatRate decimal.Decimal) (ht, vatAmount decimal.Decimal) {
	one := decimal.NewFromInt(1)
	ht = amountTTC.Div(one.Add(vatRate.Div(cent))).Round(2)
	vatAmount = amountTTC.Round(2).Sub(ht)
	return ht, vatAmount
}
