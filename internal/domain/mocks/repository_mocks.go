package mocks

import (
	"context"
	"sync"

	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// MockMealRepository is a mock implementation of repository.MealRepository for testing.
type MockMealRepository struct {
	mu           sync.Mutex
	Catalog      []entity.Meal
	ChefMeals    map[string][]entity.Meal
	Created      []entity.MealInput
	Updated      map[string]entity.MealInput
	Deleted      []string
	Availability map[string]bool
	CatalogCalls int
	ListErr      error
	WriteErr     error
}

func (m *MockMealRepository) ListCatalog(ctx context.Context) ([]entity.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatalogCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]entity.Meal(nil), m.Catalog...), nil
}

func (m *MockMealRepository) ListByChef(ctx context.Context, chefRef string) ([]entity.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]entity.Meal(nil), m.ChefMeals[chefRef]...), nil
}

func (m *MockMealRepository) Create(ctx context.Context, chefRef string, in entity.MealInput) (*entity.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	m.Created = append(m.Created, in)
	return &entity.Meal{ID: "meal-new", ChefRef: chefRef, Name: in.Name, Description: in.Description,
		Category: in.Category, Price: in.Price, Available: in.Available, ImageURL: in.ImageURL}, nil
}

func (m *MockMealRepository) Update(ctx context.Context, id string, in entity.MealInput) (*entity.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	if m.Updated == nil {
		m.Updated = map[string]entity.MealInput{}
	}
	m.Updated[id] = in
	return &entity.Meal{ID: id, Name: in.Name, Category: in.Category, Price: in.Price, Available: in.Available}, nil
}

func (m *MockMealRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockMealRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if m.Availability == nil {
		m.Availability = map[string]bool{}
	}
	m.Availability[id] = available
	return nil
}

// MockOrderRepository is a mock implementation of repository.OrderRepository for testing.
// BeforeCreate, si no es nil, se ejecuta antes de responder a Create (p. ej. para bloquear).
type MockOrderRepository struct {
	mu           sync.Mutex
	Requests     []entity.OrderRequest
	Confirmation *entity.OrderConfirmation
	History      map[string][]entity.Order
	Orders       map[string]entity.Order
	Tracking     map[string]entity.OrderTracking
	CreateErr    error
	ReadErr      error
	BeforeCreate func(ctx context.Context)
}

func (m *MockOrderRepository) Create(ctx context.Context, req entity.OrderRequest) (*entity.OrderConfirmation, error) {
	if m.BeforeCreate != nil {
		m.BeforeCreate(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if m.Confirmation != nil {
		c := *m.Confirmation
		return &c, nil
	}
	return &entity.OrderConfirmation{OrderID: "order-1", Status: entity.OrderStatusPending}, nil
}

// CreateCalls número de llamadas a Create.
func (m *MockOrderRepository) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

func (m *MockOrderRepository) ListByEmployee(ctx context.Context, employeeRef string) ([]entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return append([]entity.Order(nil), m.History[employeeRef]...), nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	o, ok := m.Orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (m *MockOrderRepository) Track(ctx context.Context, id string) (*entity.OrderTracking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	t, ok := m.Tracking[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// MockDeliveryRepository is a mock implementation of repository.DeliveryRepository for testing.
type MockDeliveryRepository struct {
	mu        sync.Mutex
	Assigned  map[string][]entity.Delivery
	Delivered []string
	ListErr   error
	MarkErr   error
}

func (m *MockDeliveryRepository) ListByCourier(ctx context.Context, courierRef string) ([]entity.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]entity.Delivery(nil), m.Assigned[courierRef]...), nil
}

func (m *MockDeliveryRepository) MarkDelivered(ctx context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.Delivered = append(m.Delivered, orderID)
	return nil
}

// MockPlanRepository is a mock implementation of repository.PlanRepository for testing.
type MockPlanRepository struct {
	mu            sync.Mutex
	Plans         []entity.Plan
	Subscriptions map[string]entity.Subscription
	Created       []entity.PlanInput
	Updated       map[string]entity.PlanInput
	Deleted       []string
	ListCalls     int
	ListErr       error
	WriteErr      error
}

func (m *MockPlanRepository) List(ctx context.Context) ([]entity.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]entity.Plan(nil), m.Plans...), nil
}

func (m *MockPlanRepository) Create(ctx context.Context, in entity.PlanInput) (*entity.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	m.Created = append(m.Created, in)
	p := entity.Plan{ID: "plan-new", Name: in.Name, Description: in.Description,
		MonthlyPrice: in.MonthlyPrice, MealsPerDay: in.MealsPerDay, Active: in.Active}
	m.Plans = append(m.Plans, p)
	return &p, nil
}

func (m *MockPlanRepository) Update(ctx context.Context, id string, in entity.PlanInput) (*entity.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	if m.Updated == nil {
		m.Updated = map[string]entity.PlanInput{}
	}
	m.Updated[id] = in
	return &entity.Plan{ID: id, Name: in.Name, MonthlyPrice: in.MonthlyPrice, MealsPerDay: in.MealsPerDay, Active: in.Active}, nil
}

func (m *MockPlanRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockPlanRepository) GetSubscription(ctx context.Context, companyRef string) (*entity.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	s, ok := m.Subscriptions[companyRef]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *MockPlanRepository) Subscribe(ctx context.Context, companyRef, planID string) (*entity.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	if m.Subscriptions == nil {
		m.Subscriptions = map[string]entity.Subscription{}
	}
	s := entity.Subscription{CompanyRef: companyRef, PlanID: planID, Status: "active"}
	m.Subscriptions[companyRef] = s
	return &s, nil
}

// MockFeedbackRepository is a mock implementation of repository.FeedbackRepository for testing.
type MockFeedbackRepository struct {
	mu        sync.Mutex
	Items     []entity.Feedback
	Submitted []entity.FeedbackInput
	ListErr   error
	SubmitErr error
}

func (m *MockFeedbackRepository) List(ctx context.Context) ([]entity.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]entity.Feedback(nil), m.Items...), nil
}

func (m *MockFeedbackRepository) Submit(ctx context.Context, employeeRef string, in entity.FeedbackInput) (*entity.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SubmitErr != nil {
		return nil, m.SubmitErr
	}
	m.Submitted = append(m.Submitted, in)
	f := entity.Feedback{ID: "fb-new", EmployeeRef: employeeRef, MealID: in.MealID, Rating: in.Rating, Comment: in.Comment}
	m.Items = append(m.Items, f)
	return &f, nil
}
