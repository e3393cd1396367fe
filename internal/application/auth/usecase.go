package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/repository"
	"github.com/mbertrand/facturation-api/pkg/jwt"
)

// JWTConfig configuration pour la génération des tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase cas d'usage d'authentification : inscription et connexion.
// L'inscription crée l'entreprise avec ses paramètres de facturation par
// défaut (préfixes FAC/AVO, plafond espèces 1000 EUR).
type AuthUseCase struct {
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construit le cas d'usage.
func NewAuthUseCase(userRepo repository.UserRepository, settingsRepo repository.SettingsRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, settingsRepo: settingsRepo, jwtCfg: jwtCfg}
}

// RegisterUser crée l'entreprise, ses paramètres par défaut et le premier
// utilisateur (rôle admin). Le mot de passe est haché avec bcrypt.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	companyID := uuid.New().String()

	settings := &entity.CompanySettings{
		CompanyID:           companyID,
		InvoicePrefix:       entity.DefaultInvoicePrefix,
		CreditNotePrefix:    entity.DefaultCreditNotePrefix,
		CashPaymentsEnabled: true,
		CashPaymentLimit:    decimal.NewFromInt(1000),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.settingsRepo.Create(ctx, settings); err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login vérifie email/mot de passe, génère le JWT et retourne token + utilisateur.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
