package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbertrand/facturation-api/internal/application/auth"
	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
	pkgjwt "github.com/mbertrand/facturation-api/pkg/jwt"
)

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

type memSettingsRepo struct {
	byCompany map[string]*entity.CompanySettings
}

func (r *memSettingsRepo) Create(_ context.Context, s *entity.CompanySettings) error {
	copied := *s
	r.byCompany[s.CompanyID] = &copied
	return nil
}

func (r *memSettingsRepo) GetByCompany(_ context.Context, companyID string) (*entity.CompanySettings, error) {
	s, ok := r.byCompany[companyID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *memSettingsRepo) GetForUpdate(ctx context.Context, companyID string) (*entity.CompanySettings, error) {
	return r.GetByCompany(ctx, companyID)
}

func (r *memSettingsRepo) UpdateCounter(_ context.Context, _ string, _ entity.DocumentFamily, _ int64) error {
	return nil
}

func (r *memSettingsRepo) Update(_ context.Context, _ *entity.CompanySettings) error {
	return nil
}

func newAuthFixture() (*auth.AuthUseCase, *memUserRepo, *memSettingsRepo) {
	users := &memUserRepo{byEmail: map[string]*entity.User{}}
	settings := &memSettingsRepo{byCompany: map[string]*entity.CompanySettings{}}
	uc := auth.NewAuthUseCase(users, settings, auth.JWTConfig{
		Secret:     "secret-de-test",
		ExpMinutes: 60,
		Issuer:     "facturation-api-test",
	})
	return uc, users, settings
}

// L'inscription crée l'entreprise avec ses paramètres de facturation par
// défaut (préfixes FAC/AVO, plafond espèces 1000 EUR) et un premier
// utilisateur admin.
func TestRegisterUser_CreeEntrepriseEtParametres(t *testing.T) {
	uc, users, settings := newAuthFixture()

	resp, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "pierre@batimartin.fr",
		Password: "motdepasse-solide",
		Name:     "Pierre Martin",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdmin, resp.Role)
	assert.NotEmpty(t, resp.CompanyID)

	s := settings.byCompany[resp.CompanyID]
	require.NotNil(t, s, "les paramètres par défaut doivent exister")
	assert.Equal(t, entity.DefaultInvoicePrefix, s.InvoicePrefix)
	assert.Equal(t, entity.DefaultCreditNotePrefix, s.CreditNotePrefix)
	assert.True(t, s.CashPaymentsEnabled)
	assert.EqualValues(t, "1000", s.CashPaymentLimit.String())

	// Le mot de passe est haché, jamais stocké en clair.
	stored := users.byEmail["pierre@batimartin.fr"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "motdepasse-solide", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterUser_EmailDejaPris(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "87654321"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenPorteLesClaims(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "pierre@batimartin.fr", Password: "motdepasse-solide",
	})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "pierre@batimartin.fr", Password: "motdepasse-solide"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, companyID, role, err := pkgjwt.Parse("secret-de-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, registered.CompanyID, companyID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_IdentifiantsInvalides(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.fr", Password: "mauvais"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "inconnu@b.fr", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CompteInactif(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "12345678"})
	require.NoError(t, err)
	users.byEmail["a@b.fr"].Status = "disabled"

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.fr", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
