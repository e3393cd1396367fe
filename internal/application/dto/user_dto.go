package dto

import "time"

// RegisterRequest inscription : crée l'entreprise (paramètres par défaut)
// et son premier utilisateur.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
}

// LoginRequest authentification par email/mot de passe.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse utilisateur exposé par l'API.
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token JWT et utilisateur authentifié.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
