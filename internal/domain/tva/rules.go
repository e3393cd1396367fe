package tva

// DefaultRules prédicats d'éligibilité par défaut (règles encodées, pures).
type DefaultRules struct{}

var _ RuleChecker = DefaultRules{}

// ReverseChargeAllowed : le preneur doit être assujetti à la TVA et disposer
// d'un numéro de TVA intracommunautaire.
func (DefaultRules) ReverseChargeAllowed(meta InvoiceMeta) (bool, []string) {
	if !meta.ClientVATRegistered || meta.ClientVATNumber == "" {
		return false, nil
	}
	return true, []string{
		"preneur assujetti à la TVA",
		"numéro de TVA intracommunautaire du preneur : " + meta.ClientVATNumber,
		"travaux de sous-traitance du bâtiment",
	}
}

// ReducedRateAllowed : local d'habitation achevé depuis plus de 2 ans, travaux
// d'amélioration (pas de construction neuve).
func (DefaultRules) ReducedRateAllowed(meta InvoiceMeta) (bool, []string) {
	if meta.PropertyType != PropertyResidential {
		return false, nil
	}
	if meta.PropertyAgeYears < 2 {
		return false, nil
	}
	switch meta.WorkType {
	case WorkRenovation, WorkAmelioration, WorkEnergy:
	default:
		return false, nil
	}
	return true, []string{
		"local à usage d'habitation",
		"bien achevé depuis plus de 2 ans",
		"travaux d'amélioration, de transformation ou d'entretien",
	}
}
