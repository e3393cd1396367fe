package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote devis. Lecture seule pour le moteur de facturation : seule la liaison
// devis → facture (QuoteID) est exploitée ici.
type Quote struct {
	ID          string
	CompanyID   string
	ClientID    string
	Number      string
	ProjectName string // nom du chantier
	SubtotalHT  decimal.Decimal
	TotalVAT    decimal.Decimal
	TotalTTC    decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
