package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod moyen de paiement accepté.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCheck    PaymentMethod = "check"
	MethodTransfer PaymentMethod = "transfer"
	MethodCard     PaymentMethod = "card"
)

// IsValid vérifie que le moyen de paiement appartient à l'énumération.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCheck, MethodTransfer, MethodCard:
		return true
	}
	return false
}

// Payment encaissement rattaché à une facture.
// Les paiements en espèces passent par le garde-fou du plafond légal.
type Payment struct {
	ID        string
	CompanyID string
	InvoiceID string
	Amount    decimal.Decimal
	Method    PaymentMethod
	Date      time.Time
	Reference string // numéro de chèque, référence de virement, optionnel
	CreatedAt time.Time
}
