package remote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// Formas JSON de la API remota. Se mantienen separadas de las entidades para que un cambio
// de contrato no se propague al dominio.

type userWire struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Ref        string `json:"ref"`
	CompanyRef string `json:"company_ref"`
}

type authWire struct {
	Token string   `json:"token"`
	User  userWire `json:"user"`
}

type mealWire struct {
	ID          string          `json:"id"`
	ChefRef     string          `json:"chef_ref"`
	ChefName    string          `json:"chef_name"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	ImageURL    string          `json:"image_url"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (w mealWire) entity() entity.Meal {
	return entity.Meal{
		ID: w.ID, ChefRef: w.ChefRef, ChefName: w.ChefName, Name: w.Name, Description: w.Description,
		Category: w.Category, Price: w.Price, Available: w.Available, ImageURL: w.ImageURL, UpdatedAt: w.UpdatedAt,
	}
}

func meals(ws []mealWire) []entity.Meal {
	out := make([]entity.Meal, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.entity())
	}
	return out
}

type mealInputWire struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	ImageURL    string          `json:"image_url,omitempty"`
}

func toMealInputWire(in entity.MealInput) mealInputWire {
	return mealInputWire{
		Name: in.Name, Description: in.Description, Category: in.Category,
		Price: in.Price, Available: in.Available, ImageURL: in.ImageURL,
	}
}

type orderConfirmationWire struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

type orderLineWire struct {
	MealID   string          `json:"meal_id"`
	MealName string          `json:"meal_name"`
	Price    decimal.Decimal `json:"price"`
}

type orderWire struct {
	ID          string          `json:"id"`
	EmployeeRef string          `json:"employee_ref"`
	Status      string          `json:"status"`
	Items       []orderLineWire `json:"items"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (w orderWire) entity() entity.Order {
	lines := make([]entity.OrderLine, 0, len(w.Items))
	for _, l := range w.Items {
		lines = append(lines, entity.OrderLine{MealID: l.MealID, MealName: l.MealName, Price: l.Price})
	}
	return entity.Order{ID: w.ID, EmployeeRef: w.EmployeeRef, Status: w.Status, Lines: lines, Total: w.Total, CreatedAt: w.CreatedAt}
}

type positionWire struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type trackingWire struct {
	OrderID    string        `json:"order_id"`
	Status     string        `json:"status"`
	CourierRef string        `json:"courier_ref"`
	ETA        *time.Time    `json:"eta"`
	Position   *positionWire `json:"position"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (w trackingWire) entity() entity.OrderTracking {
	t := entity.OrderTracking{OrderID: w.OrderID, Status: w.Status, CourierRef: w.CourierRef, ETA: w.ETA, UpdatedAt: w.UpdatedAt}
	if w.Position != nil {
		t.Position = &entity.Coordinates{Lat: w.Position.Lat, Lng: w.Position.Lng}
	}
	return t
}

type deliveryWire struct {
	OrderID     string    `json:"order_id"`
	Address     string    `json:"address"`
	Status      string    `json:"status"`
	EmployeeRef string    `json:"employee_ref"`
	AssignedAt  time.Time `json:"assigned_at"`
}

type planWire struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	MealsPerDay  int             `json:"meals_per_day"`
	Active       bool            `json:"active"`
}

func (w planWire) entity() entity.Plan {
	return entity.Plan{ID: w.ID, Name: w.Name, Description: w.Description, MonthlyPrice: w.MonthlyPrice, MealsPerDay: w.MealsPerDay, Active: w.Active}
}

type subscriptionWire struct {
	CompanyRef string     `json:"company_ref"`
	PlanID     string     `json:"plan_id"`
	PlanName   string     `json:"plan_name"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	RenewsAt   *time.Time `json:"renews_at"`
}

func (w subscriptionWire) entity() *entity.Subscription {
	return &entity.Subscription{CompanyRef: w.CompanyRef, PlanID: w.PlanID, PlanName: w.PlanName, Status: w.Status, StartedAt: w.StartedAt, RenewsAt: w.RenewsAt}
}

type feedbackWire struct {
	ID          string    `json:"id"`
	EmployeeRef string    `json:"employee_ref"`
	MealID      string    `json:"meal_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

func (w feedbackWire) entity() entity.Feedback {
	return entity.Feedback{ID: w.ID, EmployeeRef: w.EmployeeRef, MealID: w.MealID, Rating: w.Rating, Comment: w.Comment, CreatedAt: w.CreatedAt}
}
