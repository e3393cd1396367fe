package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNote avoir : document à montants négatifs qui contrepasse une facture
// émise. Séquence de numérotation indépendante (AVO-YYYY-NNNN par défaut).
type CreditNote struct {
	ID         string
	CompanyID  string
	ClientID   string
	InvoiceID  string // facture contrepassée
	Number     string
	Date       time.Time
	SubtotalHT decimal.Decimal
	TotalVAT   decimal.Decimal
	TotalTTC   decimal.Decimal
	Note       string // référence le numéro de la facture d'origine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreditNoteLine ligne d'avoir (quantités négatives, mêmes règles de calcul).
type CreditNoteLine struct {
	ID              string
	CreditNoteID    string
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
}
