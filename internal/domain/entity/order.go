package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido según la API remota.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusOnTheWay  = "on_the_way"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem línea del payload de pedido.
type OrderItem struct {
	ItemID string `json:"item_id"`
}

// OrderRequest payload remoto: {subject_ref, items:[{item_id}]}. El orden de Items no tiene significado.
type OrderRequest struct {
	SubjectRef     string      `json:"subject_ref"`
	Items          []OrderItem `json:"items"`
	IdempotencyKey string      `json:"-"`
}

// OrderConfirmation respuesta de la API al crear un pedido.
type OrderConfirmation struct {
	OrderID   string
	Status    string
	Total     decimal.Decimal
	CreatedAt time.Time
}

// OrderLine línea de un pedido ya registrado.
type OrderLine struct {
	MealID   string
	MealName string
	Price    decimal.Decimal
}

// Order pedido del historial de un empleado.
type Order struct {
	ID          string
	EmployeeRef string
	Status      string
	Lines       []OrderLine
	Total       decimal.Decimal
	CreatedAt   time.Time
}

// OrderTracking estado de entrega de un pedido.
type OrderTracking struct {
	OrderID    string
	Status     string
	CourierRef string
	ETA        *time.Time
	Position   *Coordinates
	UpdatedAt  time.Time
}

// Delivery pedido asignado a un repartidor.
type Delivery struct {
	OrderID     string
	Address     string
	Status      string
	EmployeeRef string
	AssignedAt  time.Time
}
