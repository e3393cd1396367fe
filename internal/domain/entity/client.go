package entity

import "time"

// Client client de l'entreprise (particulier ou professionnel).
// VATRegistered et VATNumber conditionnent l'autoliquidation de la TVA (BTP).
type Client struct {
	ID            string
	CompanyID     string
	Name          string
	Email         string
	Phone         string
	Address       string
	SIRET         string
	VATRegistered bool
	VATNumber     string // numéro de TVA intracommunautaire
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
