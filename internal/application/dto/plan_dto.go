package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/corporate-meals/internal/domain/money"
)

// PlanRequest alta o edición de un plan de suscripción.
type PlanRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	MealsPerDay  int             `json:"meals_per_day" validate:"min=1"`
	Active       bool            `json:"active"`
}

// PlanResponse plan con su precio proyectado.
type PlanResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	MonthlyPrice money.Display `json:"monthly_price"`
	MealsPerDay  int           `json:"meals_per_day"`
	Active       bool          `json:"active"`
}

// PlanListResponse listado de planes.
type PlanListResponse struct {
	Items []PlanResponse `json:"items"`
	Cache CacheMeta      `json:"cache"`
}

// SubscribeRequest suscripción de la empresa a un plan.
type SubscribeRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// SubscriptionResponse suscripción vigente de la empresa.
type SubscriptionResponse struct {
	CompanyRef string     `json:"company_ref"`
	PlanID     string     `json:"plan_id,omitempty"`
	PlanName   string     `json:"plan_name,omitempty"`
	Status     string     `json:"status"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	RenewsAt   *time.Time `json:"renews_at,omitempty"`
	Cache      CacheMeta  `json:"cache"`
}
