package dto

import (
	"github.com/shopspring/decimal"
)

// LineItemRequest ligne saisie par l'appelant. Les montants utilisent le type
// Amount tolérant (valeur illisible → 0) ; la validation métier rejette
// ensuite les lignes incohérentes avec des messages agrégés.
type LineItemRequest struct {
	Description      string  `json:"description"`
	Quantity         Amount  `json:"quantity"`
	UnitPriceHT      Amount  `json:"unit_price_ht"`
	VATRate          *Amount `json:"vat_rate"`
	DiscountPercent  Amount  `json:"discount_percent"`
	MarkupPercent    Amount  `json:"markup_percent"`
	SurchargePercent Amount  `json:"surcharge_percent"` // alias hérité de majoration
	SortOrder        *int    `json:"sort_order"`
	SectionID        string  `json:"section_id"`
}

// CreateInvoiceRequest création de facture standard.
type CreateInvoiceRequest struct {
	ClientID          string            `json:"client_id"`
	QuoteID           string            `json:"quote_id"`
	Items             []LineItemRequest `json:"items"`
	ReverseChargeBTP  bool              `json:"reverse_charge_btp"`
	ReducedVATApplied bool              `json:"reduced_vat_applied"`
	ReducedVATRate    Amount            `json:"reduced_vat_rate"` // 10 ou 5.5
	PropertyType      string            `json:"property_type"`
	PropertyAgeYears  int               `json:"property_age_years"`
	WorkType          string            `json:"work_type"`
	Note              string            `json:"note"`
}

// CreateAdvanceInvoiceRequest création d'une facture d'acompte.
type CreateAdvanceInvoiceRequest struct {
	ClientID    string `json:"client_id"`
	QuoteID     string `json:"quote_id"`
	ProjectName string `json:"project_name"`
	AmountTTC   Amount `json:"amount_ttc"`
	VATRate     Amount `json:"vat_rate"`
}

// CreateFinalInvoiceRequest création de la facture de solde référençant
// l'acompte parent.
type CreateFinalInvoiceRequest struct {
	ParentInvoiceID string            `json:"parent_invoice_id"`
	Items           []LineItemRequest `json:"items"`
	Note            string            `json:"note"`
}

// ApplyPaymentRequest encaissement. Le montant est analysé strictement :
// une valeur illisible est une erreur, jamais un zéro silencieux.
type ApplyPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"` // cash, check, transfer, card
	Date      string          `json:"date"`   // YYYY-MM-DD, défaut aujourd'hui
	Reference string          `json:"reference"`
}

// UpdateStatusRequest transition de statut pilotée de l'extérieur
// (pending ⇄ overdue uniquement).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceLineResponse ligne calculée retournée à l'appelant.
type InvoiceLineResponse struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPriceHT     decimal.Decimal `json:"unit_price_ht"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	MarkupPercent   decimal.Decimal `json:"markup_percent"`
	UnitPriceNetHT  decimal.Decimal `json:"unit_price_net_ht"`
	UnitPriceTTC    decimal.Decimal `json:"unit_price_ttc"`
	TotalHT         decimal.Decimal `json:"total_ht"`
	TotalVAT        decimal.Decimal `json:"total_vat"`
	TotalTTC        decimal.Decimal `json:"total_ttc"`
	SortOrder       int             `json:"sort_order"`
	SectionID       string          `json:"section_id,omitempty"`
}

// InvoiceResponse facture complète.
type InvoiceResponse struct {
	ID               string                `json:"id"`
	ClientID         string                `json:"client_id"`
	QuoteID          string                `json:"quote_id,omitempty"`
	Number           string                `json:"number"`
	Status           string                `json:"status"`
	Type             string                `json:"type"`
	Date             string                `json:"date"`
	SubtotalHT       decimal.Decimal       `json:"subtotal_ht"`
	TotalVAT         decimal.Decimal       `json:"total_vat"`
	TotalTTC         decimal.Decimal       `json:"total_ttc"`
	PaidAmount       decimal.Decimal       `json:"paid_amount"`
	ParentInvoiceID  string                `json:"parent_invoice_id,omitempty"`
	AdvanceAmount    decimal.Decimal       `json:"advance_amount"`
	VATJustification string                `json:"vat_justification,omitempty"`
	Note             string                `json:"note,omitempty"`
	Lines            []InvoiceLineResponse `json:"lines,omitempty"`
	Payments         []PaymentResponse     `json:"payments,omitempty"`
	Warnings         []string              `json:"warnings,omitempty"`
}

// CreditNoteResponse avoir complet.
type CreditNoteResponse struct {
	ID         string                `json:"id"`
	ClientID   string                `json:"client_id"`
	InvoiceID  string                `json:"invoice_id"`
	Number     string                `json:"number"`
	Date       string                `json:"date"`
	SubtotalHT decimal.Decimal       `json:"subtotal_ht"`
	TotalVAT   decimal.Decimal       `json:"total_vat"`
	TotalTTC   decimal.Decimal       `json:"total_ttc"`
	Note       string                `json:"note,omitempty"`
	Lines      []InvoiceLineResponse `json:"lines,omitempty"`
}

// PaymentResponse encaissement persisté.
type PaymentResponse struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Date      string          `json:"date"`
	Reference string          `json:"reference,omitempty"`
}

// SettingsResponse paramètres de facturation exposés (les compteurs restent
// en lecture seule : seul le SequenceAllocator les modifie).
type SettingsResponse struct {
	InvoicePrefix       string          `json:"invoice_prefix"`
	CreditNotePrefix    string          `json:"credit_note_prefix"`
	CashPaymentsEnabled bool            `json:"cash_payments_enabled"`
	CashPaymentLimit    decimal.Decimal `json:"cash_payment_limit"`
}

// UpdateSettingsRequest mise à jour des préfixes et de la politique espèces.
type UpdateSettingsRequest struct {
	InvoicePrefix       *string `json:"invoice_prefix"`
	CreditNotePrefix    *string `json:"credit_note_prefix"`
	CashPaymentsEnabled *bool   `json:"cash_payments_enabled"`
	CashPaymentLimit    *Amount `json:"cash_payment_limit"`
}
