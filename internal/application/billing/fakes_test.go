package billing_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbertrand/facturation-api/internal/application/billing"
	"github.com/mbertrand/facturation-api/internal/application/dto"
	"github.com/mbertrand/facturation-api/internal/domain/entity"
	"github.com/mbertrand/facturation-api/internal/domain/tva"
)

// Fakes en mémoire reproduisant la sémantique des repositories PostgreSQL :
// le runner de transaction prend un snapshot de l'état avant fn et le
// restaure si fn échoue, ce qui rejoue le Rollback réel (numéro de document
// compris). Le mutex du store sérialise les transactions comme le ferait le
// SELECT FOR UPDATE sur la ligne de paramètres.

type memStore struct {
	mu sync.Mutex

	clients      map[string]*entity.Client
	quotes       map[string]*entity.Quote
	invoices     map[string]*entity.Invoice
	invoiceLines map[string][]*entity.InvoiceLine
	creditNotes  map[string]*entity.CreditNote
	noteLines    map[string][]*entity.CreditNoteLine
	payments     map[string][]*entity.Payment
	settings     map[string]*entity.CompanySettings

	// failInvoiceLine force l'échec du prochain CreateLine de facture, pour
	// vérifier que l'unité de travail annule tout (numéro compris).
	failInvoiceLine bool
}

func newMemStore() *memStore {
	return &memStore{
		clients:      map[string]*entity.Client{},
		quotes:       map[string]*entity.Quote{},
		invoices:     map[string]*entity.Invoice{},
		invoiceLines: map[string][]*entity.InvoiceLine{},
		creditNotes:  map[string]*entity.CreditNote{},
		noteLines:    map[string][]*entity.CreditNoteLine{},
		payments:     map[string][]*entity.Payment{},
		settings:     map[string]*entity.CompanySettings{},
	}
}

type snapshot struct {
	clients      map[string]*entity.Client
	quotes       map[string]*entity.Quote
	invoices     map[string]*entity.Invoice
	invoiceLines map[string][]*entity.InvoiceLine
	creditNotes  map[string]*entity.CreditNote
	noteLines    map[string][]*entity.CreditNoteLine
	payments     map[string][]*entity.Payment
	settings     map[string]*entity.CompanySettings
}

func cloneMap[V any](m map[string]*V) map[string]*V {
	out := make(map[string]*V, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

func cloneSliceMap[V any](m map[string][]*V) map[string][]*V {
	out := make(map[string][]*V, len(m))
	for k, list := range m {
		copied := make([]*V, len(list))
		for i, v := range list {
			c := *v
			copied[i] = &c
		}
		out[k] = copied
	}
	return out
}

func (s *memStore) snapshot() snapshot {
	return snapshot{
		clients:      cloneMap(s.clients),
		quotes:       cloneMap(s.quotes),
		invoices:     cloneMap(s.invoices),
		invoiceLines: cloneSliceMap(s.invoiceLines),
		creditNotes:  cloneMap(s.creditNotes),
		noteLines:    cloneSliceMap(s.noteLines),
		payments:     cloneSliceMap(s.payments),
		settings:     cloneMap(s.settings),
	}
}

func (s *memStore) restore(snap snapshot) {
	s.clients = snap.clients
	s.quotes = snap.quotes
	s.invoices = snap.invoices
	s.invoiceLines = snap.invoiceLines
	s.creditNotes = snap.creditNotes
	s.noteLines = snap.noteLines
	s.payments = snap.payments
	s.settings = snap.settings
}

// lock des repos hors transaction ; les repos liés à la transaction ne
// verrouillent pas, le runner détient déjà le mutex.
func (s *memStore) acquire(outer bool) func() {
	if !outer {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct {
	s *memStore
}

func (r *memTxRunner) RunBilling(_ context.Context, fn func(repos billing.TxRepos) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	repos := billing.TxRepos{
		Clients:     &memClientRepo{s: r.s},
		Quotes:      &memQuoteRepo{s: r.s},
		Invoices:    &memInvoiceRepo{s: r.s},
		CreditNotes: &memCreditNoteRepo{s: r.s},
		Payments:    &memPaymentRepo{s: r.s},
		Settings:    &memSettingsRepo{s: r.s},
	}
	if err := fn(repos); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ── Repositories ──────────────────────────────────────────────────────────────

type memClientRepo struct {
	s     *memStore
	outer bool
}

func (r *memClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	defer r.s.acquire(r.outer)()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

type memQuoteRepo struct {
	s     *memStore
	outer bool
}

func (r *memQuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	defer r.s.acquire(r.outer)()
	q, ok := r.s.quotes[id]
	if !ok {
		return nil, nil
	}
	copied := *q
	return &copied, nil
}

type memInvoiceRepo struct {
	s     *memStore
	outer bool
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	defer r.s.acquire(r.outer)()
	copied := *inv
	r.s.invoices[inv.ID] = &copied
	return nil
}

func (r *memInvoiceRepo) CreateLine(_ context.Context, line *entity.InvoiceLine) error {
	defer r.s.acquire(r.outer)()
	if r.s.failInvoiceLine {
		return errors.New("insert invoice line: panne simulée")
	}
	copied := *line
	r.s.invoiceLines[line.InvoiceID] = append(r.s.invoiceLines[line.InvoiceID], &copied)
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	defer r.s.acquire(r.outer)()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (r *memInvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *memInvoiceRepo) GetLinesByInvoiceID(_ context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	defer r.s.acquire(r.outer)()
	lines := r.s.invoiceLines[invoiceID]
	out := make([]*entity.InvoiceLine, len(lines))
	for i, l := range lines {
		copied := *l
		out[i] = &copied
	}
	return out, nil
}

func (r *memInvoiceRepo) UpdatePayment(_ context.Context, inv *entity.Invoice) error {
	defer r.s.acquire(r.outer)()
	stored, ok := r.s.invoices[inv.ID]
	if !ok {
		return errors.New("facture inconnue")
	}
	stored.PaidAmount = inv.PaidAmount
	stored.Status = inv.Status
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *memInvoiceRepo) UpdateStatus(_ context.Context, id string, status entity.InvoiceStatus, updatedAt time.Time) error {
	defer r.s.acquire(r.outer)()
	stored, ok := r.s.invoices[id]
	if !ok {
		return errors.New("facture inconnue")
	}
	stored.Status = status
	stored.UpdatedAt = updatedAt
	return nil
}

func (r *memInvoiceRepo) CountByCompanyAndYear(_ context.Context, companyID string, year int) (int64, error) {
	defer r.s.acquire(r.outer)()
	var count int64
	for _, inv := range r.s.invoices {
		if inv.CompanyID == companyID && inv.Date.Year() == year {
			count++
		}
	}
	return count, nil
}

func (r *memInvoiceRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Invoice, error) {
	defer r.s.acquire(r.outer)()
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CompanyID == companyID {
			copied := *inv
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memCreditNoteRepo struct {
	s     *memStore
	outer bool
}

func (r *memCreditNoteRepo) Create(_ context.Context, note *entity.CreditNote) error {
	defer r.s.acquire(r.outer)()
	copied := *note
	r.s.creditNotes[note.ID] = &copied
	return nil
}

func (r *memCreditNoteRepo) CreateLine(_ context.Context, line *entity.CreditNoteLine) error {
	defer r.s.acquire(r.outer)()
	copied := *line
	r.s.noteLines[line.CreditNoteID] = append(r.s.noteLines[line.CreditNoteID], &copied)
	return nil
}

func (r *memCreditNoteRepo) GetByID(_ context.Context, id string) (*entity.CreditNote, error) {
	defer r.s.acquire(r.outer)()
	note, ok := r.s.creditNotes[id]
	if !ok {
		return nil, nil
	}
	copied := *note
	return &copied, nil
}

func (r *memCreditNoteRepo) GetLinesByCreditNoteID(_ context.Context, creditNoteID string) ([]*entity.CreditNoteLine, error) {
	defer r.s.acquire(r.outer)()
	lines := r.s.noteLines[creditNoteID]
	out := make([]*entity.CreditNoteLine, len(lines))
	for i, l := range lines {
		copied := *l
		out[i] = &copied
	}
	return out, nil
}

func (r *memCreditNoteRepo) CountByCompanyAndYear(_ context.Context, companyID string, year int) (int64, error) {
	defer r.s.acquire(r.outer)()
	var count int64
	for _, note := range r.s.creditNotes {
		if note.CompanyID == companyID && note.Date.Year() == year {
			count++
		}
	}
	return count, nil
}

type memPaymentRepo struct {
	s     *memStore
	outer bool
}

func (r *memPaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	defer r.s.acquire(r.outer)()
	copied := *payment
	r.s.payments[payment.InvoiceID] = append(r.s.payments[payment.InvoiceID], &copied)
	return nil
}

func (r *memPaymentRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.Payment, error) {
	defer r.s.acquire(r.outer)()
	list := r.s.payments[invoiceID]
	out := make([]*entity.Payment, len(list))
	for i, p := range list {
		copied := *p
		out[i] = &copied
	}
	return out, nil
}

type memSettingsRepo struct {
	s     *memStore
	outer bool
}

func (r *memSettingsRepo) Create(_ context.Context, settings *entity.CompanySettings) error {
	defer r.s.acquire(r.outer)()
	copied := *settings
	r.s.settings[settings.CompanyID] = &copied
	return nil
}

func (r *memSettingsRepo) GetByCompany(_ context.Context, companyID string) (*entity.CompanySettings, error) {
	defer r.s.acquire(r.outer)()
	settings, ok := r.s.settings[companyID]
	if !ok {
		return nil, nil
	}
	copied := *settings
	return &copied, nil
}

func (r *memSettingsRepo) GetForUpdate(ctx context.Context, companyID string) (*entity.CompanySettings, error) {
	return r.GetByCompany(ctx, companyID)
}

func (r *memSettingsRepo) UpdateCounter(_ context.Context, companyID string, family entity.DocumentFamily, counter int64) error {
	defer r.s.acquire(r.outer)()
	settings, ok := r.s.settings[companyID]
	if !ok {
		return errors.New("paramètres inconnus")
	}
	if family == entity.FamilyCreditNote {
		settings.CreditNoteCounter = counter
	} else {
		settings.InvoiceCounter = counter
	}
	return nil
}

func (r *memSettingsRepo) Update(_ context.Context, settings *entity.CompanySettings) error {
	defer r.s.acquire(r.outer)()
	stored, ok := r.s.settings[settings.CompanyID]
	if !ok {
		return errors.New("paramètres inconnus")
	}
	stored.InvoicePrefix = settings.InvoicePrefix
	stored.CreditNotePrefix = settings.CreditNotePrefix
	stored.CashPaymentsEnabled = settings.CashPaymentsEnabled
	stored.CashPaymentLimit = settings.CashPaymentLimit
	stored.UpdatedAt = settings.UpdatedAt
	return nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

const (
	testCompanyID  = "11111111-1111-1111-1111-111111111111"
	otherCompanyID = "22222222-2222-2222-2222-222222222222"
	testClientID   = "33333333-3333-3333-3333-333333333333"
	plainClientID  = "44444444-4444-4444-4444-444444444444"
	otherClientID  = "55555555-5555-5555-5555-555555555555"
	testQuoteID    = "66666666-6666-6666-6666-666666666666"
)

type fixture struct {
	store      *memStore
	uc         *billing.InvoiceUseCase
	settingsUC *billing.SettingsUseCase
}

// newFixture câble le cas d'usage complet sur les fakes : une entreprise avec
// ses paramètres par défaut, un client assujetti à la TVA, un client
// particulier, un client d'une autre entreprise et un devis.
func newFixture() *fixture {
	store := newMemStore()
	now := time.Now()

	store.settings[testCompanyID] = &entity.CompanySettings{
		CompanyID:           testCompanyID,
		InvoicePrefix:       entity.DefaultInvoicePrefix,
		CreditNotePrefix:    entity.DefaultCreditNotePrefix,
		CashPaymentsEnabled: true,
		CashPaymentLimit:    decimal.NewFromInt(1000),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	store.clients[testClientID] = &entity.Client{
		ID: testClientID, CompanyID: testCompanyID, Name: "SARL Durand BTP",
		VATRegistered: true, VATNumber: "FR32123456789",
	}
	store.clients[plainClientID] = &entity.Client{
		ID: plainClientID, CompanyID: testCompanyID, Name: "M. Martin",
	}
	store.clients[otherClientID] = &entity.Client{
		ID: otherClientID, CompanyID: otherCompanyID, Name: "Client d'ailleurs",
	}
	store.quotes[testQuoteID] = &entity.Quote{
		ID: testQuoteID, CompanyID: testCompanyID, ClientID: testClientID,
		Number: "DEV-2026-0001", ProjectName: "Rénovation salle de bain",
	}

	settingsRepo := &memSettingsRepo{s: store, outer: true}
	uc := billing.NewInvoiceUseCase(
		&memTxRunner{s: store},
		&memClientRepo{s: store, outer: true},
		&memQuoteRepo{s: store, outer: true},
		&memInvoiceRepo{s: store, outer: true},
		&memCreditNoteRepo{s: store, outer: true},
		&memPaymentRepo{s: store, outer: true},
		billing.NewSequenceAllocator(),
		tva.NewResolver(nil),
		billing.NewPaymentPolicyGuard(settingsRepo),
	)
	return &fixture{
		store:      store,
		uc:         uc,
		settingsUC: billing.NewSettingsUseCase(settingsRepo),
	}
}

// ── Helpers DTO ───────────────────────────────────────────────────────────────

func amt(s string) dto.Amount {
	return dto.NewAmount(decimal.RequireFromString(s))
}

func amtPtr(s string) *dto.Amount {
	a := amt(s)
	return &a
}

func line(desc, qty, price, vatRate string) dto.LineItemRequest {
	return dto.LineItemRequest{
		Description: desc,
		Quantity:    amt(qty),
		UnitPriceHT: amt(price),
		VATRate:     amtPtr(vatRate),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
