package billing

import (
	"strings"

	"github.com/mbertrand/facturation-api/internal/domain"
)

// ValidationError erreurs de validation agrégées (1-indexées, lisibles).
// Signalée avant toute ouverture de transaction : rien n'est persisté.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation : " + strings.Join(e.Errors, " ; ")
}

// Unwrap permet errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}
