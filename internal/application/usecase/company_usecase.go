package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

// CompanyUseCase suscripción de la empresa vigente a un plan.
type CompanyUseCase struct {
	plans repository.PlanRepository
	cache *cache.Cache
	wf    *mutation.Workflow
	ids   IdentitySource
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(plans repository.PlanRepository, c *cache.Cache, wf *mutation.Workflow, ids IdentitySource) *CompanyUseCase {
	return &CompanyUseCase{plans: plans, cache: c, wf: wf, ids: ids}
}

// Subscription suscripción vigente. Una empresa sin suscripción devuelve Status "none".
func (uc *CompanyUseCase) Subscription(ctx context.Context) (*dto.SubscriptionResponse, error) {
	ref, err := companyRef(uc.ids)
	if err != nil {
		return nil, err
	}
	entry := cache.Get(ctx, uc.cache, cache.KeySubscription(ref), func(ctx context.Context) (*entity.Subscription, error) {
		s, err := uc.plans.GetSubscription(ctx, ref)
		if errors.Is(err, domain.ErrNotFound) {
			return &entity.Subscription{CompanyRef: ref, Status: "none"}, nil
		}
		return s, err
	})
	meta := dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, entry.Err)
	if !entry.HasValue {
		if entry.Status == cache.StatusError {
			return nil, entry.Err
		}
		return &dto.SubscriptionResponse{CompanyRef: ref, Cache: meta}, nil
	}
	s := entry.Value
	resp := &dto.SubscriptionResponse{
		CompanyRef: s.CompanyRef,
		PlanID:     s.PlanID,
		PlanName:   s.PlanName,
		Status:     s.Status,
		RenewsAt:   s.RenewsAt,
		Cache:      meta,
	}
	if !s.StartedAt.IsZero() {
		started := s.StartedAt
		resp.StartedAt = &started
	}
	return resp, nil
}

// Subscribe suscribe la empresa vigente a planID.
func (uc *CompanyUseCase) Subscribe(ctx context.Context, planID string) (dto.MutationOutcome, error) {
	ref, err := companyRef(uc.ids)
	if err != nil {
		return dto.MutationOutcome{}, err
	}
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:  "subscription.subscribe",
		Scope: "subscription:" + ref,
		Validate: func() error {
			v := domain.NewValidationError()
			if planID == "" {
				v.Add("plan_id", "selecciona un plan")
			}
			return v.OrNil()
		},
		Do: func(ctx context.Context) error {
			_, err := uc.plans.Subscribe(ctx, ref, planID)
			return err
		},
		Invalidate:     []cache.Key{cache.KeySubscription(ref)},
		SuccessMessage: "Suscripción actualizada.",
	})
}
