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
	"github.com/jhoicas/corporate-meals/internal/domain/money"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

// PlanUseCase planes de suscripción (gestión del admin y consulta de empresas).
type PlanUseCase struct {
	plans    repository.PlanRepository
	cache    *cache.Cache
	wf       *mutation.Workflow
	currency catalog.DisplayCurrency
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(plans repository.PlanRepository, c *cache.Cache, wf *mutation.Workflow, currency catalog.DisplayCurrency) *PlanUseCase {
	return &PlanUseCase{plans: plans, cache: c, wf: wf, currency: currency}
}

// Plans valor cacheado de los planes.
func (uc *PlanUseCase) Plans(ctx context.Context) cache.Entry[[]entity.Plan] {
	return cache.Get(ctx, uc.cache, cache.KeyPlans, uc.plans.List)
}

// List planes proyectados a la moneda de presentación. activeOnly oculta los inactivos (vista de empresa).
func (uc *PlanUseCase) List(ctx context.Context, activeOnly bool) (*dto.PlanListResponse, error) {
	entry := uc.Plans(ctx)
	if !entry.HasValue && entry.Status == cache.StatusError {
		return nil, entry.Err
	}
	cur := uc.currency.Display(ctx)
	items := make([]dto.PlanResponse, 0, len(entry.Value))
	for _, p := range entry.Value {
		if activeOnly && !p.Active {
			continue
		}
		items = append(items, dto.PlanResponse{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			MonthlyPrice: money.Project(p.MonthlyPrice, cur),
			MealsPerDay:  p.MealsPerDay,
			Active:       p.Active,
		})
	}
	return &dto.PlanListResponse{Items: items, Cache: dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, entry.Err)}, nil
}

// Create da de alta un plan.
func (uc *PlanUseCase) Create(ctx context.Context, in dto.PlanRequest) (dto.MutationOutcome, error) {
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:           "plan.create",
		Scope:          "plans",
		Validate:       func() error { return validatePlan(in) },
		Do:             func(ctx context.Context) error { _, err := uc.plans.Create(ctx, toPlanInput(in)); return err },
		Invalidate:     []cache.Key{cache.KeyPlans},
		SuccessMessage: "Plan creado.",
	})
}

// Update edita un plan. Las suscripciones muestran el nombre del plan, por eso también se invalidan.
func (uc *PlanUseCase) Update(ctx context.Context, id string, in dto.PlanRequest) (dto.MutationOutcome, error) {
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:               "plan.update",
		Scope:              "plans",
		Validate:           func() error { return validatePlan(in) },
		Do:                 func(ctx context.Context) error { _, err := uc.plans.Update(ctx, id, toPlanInput(in)); return err },
		Invalidate:         []cache.Key{cache.KeyPlans},
		InvalidatePrefixes: []string{cache.PrefixSubscription},
		SuccessMessage:     "Plan actualizado.",
	})
}

// Delete elimina un plan.
func (uc *PlanUseCase) Delete(ctx context.Context, id string) (dto.MutationOutcome, error) {
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:               "plan.delete",
		Scope:              "plans",
		Do:                 func(ctx context.Context) error { return uc.plans.Delete(ctx, id) },
		Invalidate:         []cache.Key{cache.KeyPlans},
		InvalidatePrefixes: []string{cache.PrefixSubscription},
		SuccessMessage:     "Plan eliminado.",
	})
}

func validatePlan(in dto.PlanRequest) error {
	v := domain.NewValidationError()
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "el nombre es obligatorio")
	}
	if !in.MonthlyPrice.IsPositive() {
		v.Add("monthly_price", "el precio mensual debe ser mayor que cero")
	}
	if in.MealsPerDay < 1 {
		v.Add("meals_per_day", "al menos una comida por día")
	}
	return v.OrNil()
}

func toPlanInput(in dto.PlanRequest) entity.PlanInput {
	return entity.PlanInput{
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		MonthlyPrice: in.MonthlyPrice,
		MealsPerDay:  in.MealsPerDay,
		Active:       in.Active,
	}
}
