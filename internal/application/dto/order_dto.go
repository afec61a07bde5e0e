package dto

import (
	"time"

	"github.com/jhoicas/corporate-meals/internal/domain/money"
)

// OrderSubmitResponse resultado del envío del pedido.
type OrderSubmitResponse struct {
	OrderID string          `json:"order_id,omitempty"`
	Status  string          `json:"status,omitempty"`
	Total   *money.Display  `json:"total,omitempty"`
	Outcome MutationOutcome `json:"outcome"`
}

// OrderLineResponse línea de un pedido.
type OrderLineResponse struct {
	MealID   string        `json:"meal_id"`
	MealName string        `json:"meal_name"`
	Price    money.Display `json:"price"`
}

// OrderResponse pedido del historial.
type OrderResponse struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	Lines     []OrderLineResponse `json:"lines"`
	Total     money.Display       `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
}

// OrderHistoryResponse historial de pedidos del empleado.
type OrderHistoryResponse struct {
	Items []OrderResponse `json:"items"`
	Cache CacheMeta       `json:"cache"`
}

// TrackingResponse seguimiento de un pedido.
type TrackingResponse struct {
	OrderID    string     `json:"order_id"`
	Status     string     `json:"status"`
	CourierRef string     `json:"courier_ref,omitempty"`
	ETA        *time.Time `json:"eta,omitempty"`
	Lat        *float64   `json:"lat,omitempty"`
	Lng        *float64   `json:"lng,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Cache      CacheMeta  `json:"cache"`
}

// DeliveryResponse pedido asignado a un repartidor.
type DeliveryResponse struct {
	OrderID     string    `json:"order_id"`
	Address     string    `json:"address"`
	Status      string    `json:"status"`
	EmployeeRef string    `json:"employee_ref"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// DeliveryListResponse entregas del repartidor.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Cache CacheMeta          `json:"cache"`
}
