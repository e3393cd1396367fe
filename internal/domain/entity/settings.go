package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Préfixes par défaut des séquences de numérotation.
const (
	DefaultInvoicePrefix    = "FAC"
	DefaultCreditNotePrefix = "AVO"
)

// DocumentFamily famille de documents numérotés : un compteur par famille et
// par entreprise.
type DocumentFamily string

const (
	FamilyInvoice    DocumentFamily = "invoice"
	FamilyCreditNote DocumentFamily = "credit_note"
)

// CompanySettings paramètres de l'entreprise : état de numérotation (préfixe +
// compteur par famille de document) et politique d'encaissement en espèces.
// Les compteurs ne sont lus et écrits qu'à travers le SequenceAllocator, sous
// verrou exclusif de ligne (SELECT FOR UPDATE).
type CompanySettings struct {
	CompanyID           string
	InvoicePrefix       string
	InvoiceCounter      int64
	CreditNotePrefix    string
	CreditNoteCounter   int64
	CashPaymentsEnabled bool
	CashPaymentLimit    decimal.Decimal // plafond légal en EUR (1000 par défaut, art. D112-3 CMF)
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
