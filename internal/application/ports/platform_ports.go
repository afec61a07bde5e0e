package ports

import (
	"context"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// Locator posición actual que entrega la plataforma. Una denegación o fallo debe devolverse
// como error explícito (domain.ErrGeolocationUnavailable); nunca se ignora en silencio.
type Locator interface {
	CurrentPosition(ctx context.Context) (entity.Coordinates, error)
}

// PreferenceStore preferencias locales persistidas. No es autoritativo para ninguna
// decisión de seguridad.
type PreferenceStore interface {
	Currency() (string, error)
	SetCurrency(code string) error
}
