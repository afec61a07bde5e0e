package repository

import (
	"context"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// OrderRepository puerto de pedidos, historial y seguimiento.
type OrderRepository interface {
	Create(ctx context.Context, req entity.OrderRequest) (*entity.OrderConfirmation, error)
	ListByEmployee(ctx context.Context, employeeRef string) ([]entity.Order, error)
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Track(ctx context.Context, id string) (*entity.OrderTracking, error)
}

// DeliveryRepository puerto de entregas asignadas a un repartidor.
type DeliveryRepository interface {
	ListByCourier(ctx context.Context, courierRef string) ([]entity.Delivery, error)
	MarkDelivered(ctx context.Context, orderID string) error
}
