package remote

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

var (
	_ repository.PlanRepository     = (*PlanRepository)(nil)
	_ repository.FeedbackRepository = (*FeedbackRepository)(nil)
)

// PlanRepository planes de suscripción y suscripciones de empresas.
type PlanRepository struct {
	c *Client
}

// NewPlanRepository construye el repositorio.
func NewPlanRepository(c *Client) *PlanRepository { return &PlanRepository{c: c} }

type planInputWire struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	MealsPerDay  int             `json:"meals_per_day"`
	Active       bool            `json:"active"`
}

func toPlanInputWire(in entity.PlanInput) planInputWire {
	return planInputWire{
		Name: in.Name, Description: in.Description, MonthlyPrice: in.MonthlyPrice,
		MealsPerDay: in.MealsPerDay, Active: in.Active,
	}
}

func (r *PlanRepository) List(ctx context.Context) ([]entity.Plan, error) {
	var out []planWire
	if err := r.c.do(ctx, call{op: "list plans", method: http.MethodGet, path: "/plans", out: &out}); err != nil {
		return nil, err
	}
	plans := make([]entity.Plan, 0, len(out))
	for _, w := range out {
		plans = append(plans, w.entity())
	}
	return plans, nil
}

func (r *PlanRepository) Create(ctx context.Context, in entity.PlanInput) (*entity.Plan, error) {
	var out planWire
	if err := r.c.do(ctx, call{op: "create plan", method: http.MethodPost, path: "/plans", body: toPlanInputWire(in), out: &out}); err != nil {
		return nil, err
	}
	p := out.entity()
	return &p, nil
}

func (r *PlanRepository) Update(ctx context.Context, id string, in entity.PlanInput) (*entity.Plan, error) {
	var out planWire
	err := r.c.do(ctx, call{op: "update plan", method: http.MethodPut, path: "/plans/" + pathEscape(id), body: toPlanInputWire(in), out: &out})
	if err != nil {
		return nil, err
	}
	p := out.entity()
	return &p, nil
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, call{op: "delete plan", method: http.MethodDelete, path: "/plans/" + pathEscape(id)})
}

// GetSubscription suscripción vigente; domain.ErrNotFound si la empresa no tiene.
func (r *PlanRepository) GetSubscription(ctx context.Context, companyRef string) (*entity.Subscription, error) {
	var out subscriptionWire
	err := r.c.do(ctx, call{op: "get subscription", method: http.MethodGet, path: "/companies/" + pathEscape(companyRef) + "/subscription", out: &out})
	if err != nil {
		return nil, err
	}
	return out.entity(), nil
}

func (r *PlanRepository) Subscribe(ctx context.Context, companyRef, planID string) (*entity.Subscription, error) {
	var out subscriptionWire
	err := r.c.do(ctx, call{
		op: "subscribe", method: http.MethodPut, path: "/companies/" + pathEscape(companyRef) + "/subscription",
		body: map[string]string{"plan_id": planID}, out: &out,
	})
	if err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// FeedbackRepository feedback de empleados.
type FeedbackRepository struct {
	c *Client
}

// NewFeedbackRepository construye el repositorio.
func NewFeedbackRepository(c *Client) *FeedbackRepository { return &FeedbackRepository{c: c} }

func (r *FeedbackRepository) List(ctx context.Context) ([]entity.Feedback, error) {
	var out []feedbackWire
	if err := r.c.do(ctx, call{op: "list feedback", method: http.MethodGet, path: "/feedback", out: &out}); err != nil {
		return nil, err
	}
	items := make([]entity.Feedback, 0, len(out))
	for _, w := range out {
		items = append(items, w.entity())
	}
	return items, nil
}

func (r *FeedbackRepository) Submit(ctx context.Context, employeeRef string, in entity.FeedbackInput) (*entity.Feedback, error) {
	body := struct {
		EmployeeRef string `json:"employee_ref"`
		MealID      string `json:"meal_id,omitempty"`
		Rating      int    `json:"rating"`
		Comment     string `json:"comment"`
	}{employeeRef, in.MealID, in.Rating, in.Comment}
	var out feedbackWire
	if err := r.c.do(ctx, call{op: "submit feedback", method: http.MethodPost, path: "/feedback", body: body, out: &out}); err != nil {
		return nil, err
	}
	f := out.entity()
	return &f, nil
}
