package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan plan de suscripción corporativa. Las cuotas las define y aplica el servidor.
type Plan struct {
	ID           string
	Name         string
	Description  string
	MonthlyPrice decimal.Decimal
	MealsPerDay  int
	Active       bool
}

// PlanInput datos de alta o edición de un plan (admin).
type PlanInput struct {
	Name         string
	Description  string
	MonthlyPrice decimal.Decimal
	MealsPerDay  int
	Active       bool
}

// Subscription suscripción vigente de una empresa.
type Subscription struct {
	CompanyRef string
	PlanID     string
	PlanName   string
	Status     string
	StartedAt  time.Time
	RenewsAt   *time.Time
}
