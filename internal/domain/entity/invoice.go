package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus statut d'une facture. Énumération fermée : toute autre valeur
// (ex : "cancelled") est rejetée — une facture émise ne s'annule que par avoir.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// IsValid vérifie que le statut appartient à l'énumération.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// InvoiceType type de facture : standard, acompte ou solde.
type InvoiceType string

const (
	TypeStandard InvoiceType = "standard"
	TypeAdvance  InvoiceType = "advance"
	TypeFinal    InvoiceType = "final"
)

// IsValid vérifie que le type appartient à l'énumération.
func (t InvoiceType) IsValid() bool {
	switch t {
	case TypeStandard, TypeAdvance, TypeFinal:
		return true
	}
	return false
}

// Invoice représente l'en-tête d'une facture.
// Une facture émise est immuable hors statut et montant payé ; seule un avoir
// (credit note) peut la contrepasser.
type Invoice struct {
	ID               string
	CompanyID        string
	ClientID         string
	QuoteID          string // devis d'origine, optionnel
	Number           string // FAC-2026-0001, FAC-AC-2026-0001, FAC-SOL-2026-0001
	Status           InvoiceStatus
	Type             InvoiceType
	Date             time.Time
	SubtotalHT       decimal.Decimal
	TotalVAT         decimal.Decimal
	TotalTTC         decimal.Decimal
	PaidAmount       decimal.Decimal
	ParentInvoiceID  string          // facture d'acompte parente (factures de solde)
	AdvanceAmount    decimal.Decimal // montant TTC de l'acompte (types advance et final)
	VATJustification string          // mention légale TVA (autoliquidation, taux réduit)
	Note             string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InvoiceLine ligne de facture persistée, toujours issue du moteur de calcul
// (jamais des montants bruts du client).
type InvoiceLine struct {
	ID              string
	InvoiceID       string
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
	SectionID       string // regroupement de lignes côté devis, optionnel
}
