package entity

import "time"

// Rôles applicatifs.
const (
	RoleAdmin     = "admin"
	RoleArtisan   = "artisan"
	RoleAssistant = "assistant"
)

// User utilisateur rattaché à une entreprise.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
