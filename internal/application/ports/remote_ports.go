package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// Credentials datos del formulario de inicio de sesión.
type Credentials struct {
	Email    string
	Password string
}

// AuthResult respuesta de la API al autenticar o resolver un token.
type AuthResult struct {
	Token      string
	UserID     string
	Role       entity.Role
	Ref        string
	CompanyRef string
}

// AuthGateway puerto de autenticación remota.
// Login devuelve domain.ErrInvalidCredentials ante credenciales rechazadas; cualquier otro
// error se considera indisponibilidad del servicio.
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	// Me resuelve la identidad asociada a un token ya emitido.
	Me(ctx context.Context, token string) (*AuthResult, error)
}

// PasswordResetGateway validación y consumo de tokens de restablecimiento (emitidos fuera del cliente).
type PasswordResetGateway interface {
	ValidateResetToken(ctx context.Context, token string) error
	ConsumeResetToken(ctx context.Context, token, newPassword string) error
}

// GeoService geocodificación y búsqueda de platos cercanos.
type GeoService interface {
	Geocode(ctx context.Context, address string) (entity.Coordinates, error)
	NearbyMeals(ctx context.Context, at entity.Coordinates, radiusKm float64) ([]entity.Meal, error)
}

// CurrencyRates fuente de tasas: unidades de cada moneda por 1 unidad de base.
type CurrencyRates interface {
	Rates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}
