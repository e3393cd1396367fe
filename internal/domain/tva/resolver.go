package tva

import "github.com/shopspring/decimal"

// Résolution du régime de TVA applicable à une facture BTP :
// taux normal, autoliquidation (sous-traitance) ou taux réduit (10 % / 5,5 %).
// L'autoliquidation prime sur le taux réduit quand les deux sont demandés.

// Taux de TVA gérés (pourcentages décimaux).
var (
	RateNormal    = decimal.NewFromInt(20)
	RateReduced10 = decimal.NewFromInt(10)
	RateReduced55 = decimal.NewFromFloat(5.5)
)

// Types de bien.
const (
	PropertyResidential = "residential"
	PropertyCommercial  = "commercial"
)

// Types de travaux.
const (
	WorkRenovation   = "renovation"
	WorkAmelioration = "amelioration"
	WorkEnergy       = "energie"
	WorkConstruction = "construction"
)

// InvoiceMeta métadonnées de la facture nécessaires à la résolution.
type InvoiceMeta struct {
	ReverseChargeBTP    bool
	ReducedVATApplied   bool
	RequestedRate       decimal.Decimal // 10 ou 5.5 ; toute autre valeur vaut 10
	ClientVATRegistered bool
	ClientVATNumber     string
	PropertyType        string
	PropertyAgeYears    int
	WorkType            string
}

// Resolution résultat : taux retenu, mention légale et conditions satisfaites.
type Resolution struct {
	Rate            decimal.Decimal
	Justification   string
	Conditions      []string
	IsReverseCharge bool
	IsReducedRate   bool
}

// RuleChecker prédicats d'éligibilité. L'implémentation par défaut est pure ;
// une implémentation adossée à la base peut la remplacer (règles par entreprise).
type RuleChecker interface {
	ReverseChargeAllowed(meta InvoiceMeta) (bool, []string)
	ReducedRateAllowed(meta InvoiceMeta) (bool, []string)
}

// Resolver choisit le régime de TVA. La décision finale lui appartient, le
// RuleChecker ne fournit que les prédicats.
type Resolver struct {
	rules RuleChecker
}

// NewResolver construit le résolveur. rules nil = règles par défaut.
func NewResolver(rules RuleChecker) *Resolver {
	if rules == nil {
		rules = DefaultRules{}
	}
	return &Resolver{rules: rules}
}

// Resolve applique la priorité autoliquidation > taux réduit > taux normal.
func (r *Resolver) Resolve(meta InvoiceMeta) Resolution {
	if meta.ReverseChargeBTP {
		if ok, conditions := r.rules.ReverseChargeAllowed(meta); ok {
			return Resolution{
				Rate:            decimal.Zero,
				Justification:   "Autoliquidation — TVA due par le preneur assujetti (art. 283, 2 nonies du CGI)",
				Conditions:      conditions,
				IsReverseCharge: true,
			}
		}
	}
	if meta.ReducedVATApplied {
		if ok, conditions := r.rules.ReducedRateAllowed(meta); ok {
			rate := normalizeReducedRate(meta.RequestedRate)
			justification := "TVA au taux réduit de 10 % — travaux d'amélioration de locaux d'habitation achevés depuis plus de 2 ans (art. 279-0 bis du CGI)"
			if rate.Equal(RateReduced55) {
				justification = "TVA au taux réduit de 5,5 % — travaux d'amélioration de la qualité énergétique (art. 278-0 bis A du CGI)"
			}
			return Resolution{
				Rate:          rate,
				Justification: justification,
				Conditions:    conditions,
				IsReducedRate: true,
			}
		}
	}
	return Resolution{
		Rate:          RateNormal,
		Justification: "TVA au taux normal de 20 %",
	}
}

// GenerateWarnings produit des avertissements non bloquants : la création du
// document n'est jamais refusée sur cette base, ils remontent à l'appelant.
func (r *Resolver) GenerateWarnings(meta InvoiceMeta) []string {
	var warnings []string
	if meta.ReverseChargeBTP && meta.ClientVATNumber == "" {
		warnings = append(warnings, "autoliquidation demandée sans numéro de TVA intracommunautaire du client")
	}
	if meta.ReducedVATApplied && meta.PropertyType == PropertyCommercial {
		warnings = append(warnings, "taux réduit demandé pour un local à usage commercial")
	}
	if meta.ReducedVATApplied && normalizeReducedRate(meta.RequestedRate).Equal(RateReduced10) && meta.PropertyAgeYears < 2 {
		warnings = append(warnings, "taux réduit de 10 % demandé pour un bien achevé depuis moins de 2 ans")
	}
	return warnings
}

func normalizeReducedRate(requested decimal.Decimal) decimal.Decimal {
	if requested.Equal(RateReduced55) {
		return RateReduced55
	}
	return RateReduced10
}
