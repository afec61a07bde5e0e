package repository

import (
	"context"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// MealRepository define el puerto hacia la colección remota de platos (DIP).
// La implementación habla con la API remota; el cliente nunca persiste platos localmente.
type MealRepository interface {
	ListCatalog(ctx context.Context) ([]entity.Meal, error)
	ListByChef(ctx context.Context, chefRef string) ([]entity.Meal, error)
	Create(ctx context.Context, chefRef string, in entity.MealInput) (*entity.Meal, error)
	Update(ctx context.Context, id string, in entity.MealInput) (*entity.Meal, error)
	Delete(ctx context.Context, id string) error
	SetAvailability(ctx context.Context, id string, available bool) error
}
