package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/catalog"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

// MealUseCase menú propio del chef.
type MealUseCase struct {
	meals    repository.MealRepository
	cache    *cache.Cache
	wf       *mutation.Workflow
	ids      IdentitySource
	currency catalog.DisplayCurrency
}

// NewMealUseCase construye el caso de uso.
func NewMealUseCase(meals repository.MealRepository, c *cache.Cache, wf *mutation.Workflow, ids IdentitySource, currency catalog.DisplayCurrency) *MealUseCase {
	return &MealUseCase{meals: meals, cache: c, wf: wf, ids: ids, currency: currency}
}

// List platos del chef vigente.
func (uc *MealUseCase) List(ctx context.Context) (*dto.MealListResponse, error) {
	ref, err := chefRef(uc.ids)
	if err != nil {
		return nil, err
	}
	entry := cache.Get(ctx, uc.cache, cache.KeyChefMeals(ref), func(ctx context.Context) ([]entity.Meal, error) {
		return uc.meals.ListByChef(ctx, ref)
	})
	if !entry.HasValue && entry.Status == cache.StatusError {
		return nil, entry.Err
	}
	cur := uc.currency.Display(ctx)
	items := make([]dto.MealResponse, 0, len(entry.Value))
	for _, m := range entry.Value {
		items = append(items, catalog.ToMealResponse(m, cur, false))
	}
	return &dto.MealListResponse{Items: items, Cache: dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, entry.Err)}, nil
}

// Create da de alta un plato.
func (uc *MealUseCase) Create(ctx context.Context, in dto.MealRequest) (dto.MutationOutcome, error) {
	ref, err := chefRef(uc.ids)
	if err != nil {
		return dto.MutationOutcome{}, err
	}
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:           "meal.create",
		Scope:          "meal:" + ref,
		Validate:       func() error { return validateMeal(in) },
		Do:             func(ctx context.Context) error { _, err := uc.meals.Create(ctx, ref, toMealInput(in)); return err },
		Invalidate:     []cache.Key{cache.KeyChefMeals(ref), cache.KeyCatalog},
		SuccessMessage: "Plato creado.",
	})
}

// Update edita un plato.
func (uc *MealUseCase) Update(ctx context.Context, id string, in dto.MealRequest) (dto.MutationOutcome, error) {
	ref, err := chefRef(uc.ids)
	if err != nil {
		return dto.MutationOutcome{}, err
	}
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:           "meal.update",
		Scope:          "meal:" + id,
		Validate:       func() error { return validateMeal(in) },
		Do:             func(ctx context.Context) error { _, err := uc.meals.Update(ctx, id, toMealInput(in)); return err },
		Invalidate:     []cache.Key{cache.KeyChefMeals(ref), cache.KeyCatalog},
		SuccessMessage: "Plato actualizado.",
	})
}

// Delete elimina un plato.
func (uc *MealUseCase) Delete(ctx context.Context, id string) (dto.MutationOutcome, error) {
	ref, err := chefRef(uc.ids)
	if err != nil {
		return dto.MutationOutcome{}, err
	}
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:           "meal.delete",
		Scope:          "meal:" + id,
		Do:             func(ctx context.Context) error { return uc.meals.Delete(ctx, id) },
		Invalidate:     []cache.Key{cache.KeyChefMeals(ref), cache.KeyCatalog},
		SuccessMessage: "Plato eliminado.",
	})
}

// SetAvailability activa o desactiva un plato en el catálogo.
func (uc *MealUseCase) SetAvailability(ctx context.Context, id string, available bool) (dto.MutationOutcome, error) {
	ref, err := chefRef(uc.ids)
	if err != nil {
		return dto.MutationOutcome{}, err
	}
	msg := "Plato marcado como no disponible."
	if available {
		msg = "Plato disponible."
	}
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:           "meal.availability",
		Scope:          "meal:" + id,
		Do:             func(ctx context.Context) error { return uc.meals.SetAvailability(ctx, id, available) },
		Invalidate:     []cache.Key{cache.KeyChefMeals(ref), cache.KeyCatalog},
		SuccessMessage: msg,
	})
}

func validateMeal(in dto.MealRequest) error {
	v := domain.NewValidationError()
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		v.Add("name", "el nombre es obligatorio")
	case len(name) > 200:
		v.Add("name", "máximo 200 caracteres")
	}
	if strings.TrimSpace(in.Category) == "" {
		v.Add("category", "la categoría es obligatoria")
	}
	if !in.Price.IsPositive() {
		v.Add("price", "el precio debe ser mayor que cero")
	}
	return v.OrNil()
}

func toMealInput(in dto.MealRequest) entity.MealInput {
	return entity.MealInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Available:   in.Available,
		ImageURL:    in.ImageURL,
	}
}
