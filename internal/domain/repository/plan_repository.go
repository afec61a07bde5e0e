package repository

import (
	"context"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// PlanRepository puerto de planes de suscripción (admin) y suscripción de empresas.
type PlanRepository interface {
	List(ctx context.Context) ([]entity.Plan, error)
	Create(ctx context.Context, in entity.PlanInput) (*entity.Plan, error)
	Update(ctx context.Context, id string, in entity.PlanInput) (*entity.Plan, error)
	Delete(ctx context.Context, id string) error
	GetSubscription(ctx context.Context, companyRef string) (*entity.Subscription, error)
	Subscribe(ctx context.Context, companyRef, planID string) (*entity.Subscription, error)
}
