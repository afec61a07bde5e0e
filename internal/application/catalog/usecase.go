package catalog

import (
	"context"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/selection"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/money"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

// DisplayCurrency moneda de presentación vigente.
type DisplayCurrency interface {
	Display(ctx context.Context) money.Currency
}

// UseCase vista del catálogo del empleado y composición de la selección.
type UseCase struct {
	cache    *cache.Cache
	meals    repository.MealRepository
	sel      *selection.Set
	currency DisplayCurrency
}

// NewUseCase construye el caso de uso.
func NewUseCase(c *cache.Cache, meals repository.MealRepository, sel *selection.Set, currency DisplayCurrency) *UseCase {
	return &UseCase{cache: c, meals: meals, sel: sel, currency: currency}
}

// Meals valor cacheado del catálogo (fetch-or-serve-stale).
func (uc *UseCase) Meals(ctx context.Context) cache.Entry[[]entity.Meal] {
	return cache.Get(ctx, uc.cache, cache.KeyCatalog, uc.meals.ListCatalog)
}

// Browse filtra el catálogo cacheado y proyecta precios. Si la caché falló pero conserva un
// valor anterior, se sirve ese valor con el error en Cache.
func (uc *UseCase) Browse(ctx context.Context, f Filter) (*dto.CatalogResponse, error) {
	entry := uc.Meals(ctx)
	if !entry.HasValue && entry.Status == cache.StatusError {
		return nil, entry.Err
	}
	cur := uc.currency.Display(ctx)
	filtered := Apply(entry.Value, f)
	items := make([]dto.MealResponse, 0, len(filtered))
	for _, m := range filtered {
		items = append(items, ToMealResponse(m, cur, uc.sel.Contains(m.ID)))
	}
	return &dto.CatalogResponse{
		Items:      items,
		Categories: Categories(entry.Value),
		Selected:   uc.sel.Len(),
		Cache:      dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, entry.Err),
	}, nil
}

// Toggle alterna un plato en la selección. Quitar siempre se permite; añadir exige que el
// plato exista y esté disponible en el valor cacheado del catálogo.
func (uc *UseCase) Toggle(ctx context.Context, itemID string) (bool, error) {
	if uc.sel.Contains(itemID) {
		uc.sel.Remove(itemID)
		return false, nil
	}
	entry := uc.Meals(ctx)
	if !entry.HasValue {
		if entry.Err != nil {
			return false, entry.Err
		}
		return false, ctx.Err()
	}
	verr := domain.NewValidationError()
	meal, ok := find(entry.Value, itemID)
	switch {
	case !ok:
		verr.Add("item_id", "el plato no existe en el catálogo")
	case !meal.Available:
		verr.Add("item_id", "el plato no está disponible")
	}
	if err := verr.OrNil(); err != nil {
		return false, err
	}
	return uc.sel.Toggle(itemID), nil
}

// Selection selección vigente con el total proyectado de los platos que siguen en el catálogo.
func (uc *UseCase) Selection(ctx context.Context) *dto.SelectionResponse {
	members := uc.sel.Members()
	entry := cache.Peek[[]entity.Meal](uc.cache, cache.KeyCatalog)
	total := money.Sum()
	for _, id := range members {
		if m, ok := find(entry.Value, id); ok {
			total = total.Add(m.Price)
		}
	}
	return &dto.SelectionResponse{
		Items: members,
		Count: len(members),
		Total: money.Project(total, uc.currency.Display(ctx)),
	}
}

// Clear vacía la selección.
func (uc *UseCase) Clear() { uc.sel.Clear() }

// ToMealResponse proyecta un plato a la moneda de presentación.
func ToMealResponse(m entity.Meal, cur money.Currency, selected bool) dto.MealResponse {
	return dto.MealResponse{
		ID:          m.ID,
		ChefRef:     m.ChefRef,
		ChefName:    m.ChefName,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Price:       money.Project(m.Price, cur),
		Available:   m.Available,
		Selected:    selected,
		ImageURL:    m.ImageURL,
		UpdatedAt:   m.UpdatedAt,
	}
}

func find(meals []entity.Meal, id string) (entity.Meal, bool) {
	for _, m := range meals {
		if m.ID == id {
			return m, true
		}
	}
	return entity.Meal{}, false
}
