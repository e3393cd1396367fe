package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound           = errors.New("ressource introuvable")
	ErrUserNotFound       = errors.New("utilisateur introuvable")
	ErrEmailAlreadyExists = errors.New("email déjà enregistré")
	ErrInvalidInput       = errors.New("entrée invalide")
	ErrDuplicate          = errors.New("ressource dupliquée")
	ErrUnauthorized       = errors.New("non autorisé")
	ErrForbidden          = errors.New("accès refusé")
	ErrConflict           = errors.New("conflit avec l'état courant")

	// Règles métier facturation.
	ErrInvoiceAlreadyPaid   = errors.New("facture déjà soldée")
	ErrAdvanceExceedsTotal  = errors.New("acompte supérieur ou égal au total du chantier")
	ErrInvalidStatus        = errors.New("statut de facture non autorisé")
	ErrSettingsNotFound     = errors.New("paramètres de l'entreprise introuvables")
	ErrCashPaymentsDisabled = errors.New("paiements en espèces désactivés")
	ErrCashLimitExceeded    = errors.New("plafond légal des paiements en espèces dépassé")
)
