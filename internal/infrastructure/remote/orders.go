package remote

import (
	"context"
	"net/http"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

var (
	_ repository.OrderRepository    = (*OrderRepository)(nil)
	_ repository.DeliveryRepository = (*DeliveryRepository)(nil)
)

// OrderRepository pedidos, historial y seguimiento.
type OrderRepository struct {
	c *Client
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(c *Client) *OrderRepository { return &OrderRepository{c: c} }

// Create envía {subject_ref, items:[{item_id}]} con la clave de idempotencia como cabecera.
func (r *OrderRepository) Create(ctx context.Context, req entity.OrderRequest) (*entity.OrderConfirmation, error) {
	var out orderConfirmationWire
	err := r.c.do(ctx, call{
		op: "create order", method: http.MethodPost, path: "/orders",
		body: req, out: &out, idempotency: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	return &entity.OrderConfirmation{OrderID: out.ID, Status: out.Status, Total: out.Total, CreatedAt: out.CreatedAt}, nil
}

func (r *OrderRepository) ListByEmployee(ctx context.Context, employeeRef string) ([]entity.Order, error) {
	var out []orderWire
	err := r.c.do(ctx, call{op: "list orders", method: http.MethodGet, path: "/employees/" + pathEscape(employeeRef) + "/orders", out: &out})
	if err != nil {
		return nil, err
	}
	orders := make([]entity.Order, 0, len(out))
	for _, w := range out {
		orders = append(orders, w.entity())
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out orderWire
	if err := r.c.do(ctx, call{op: "get order", method: http.MethodGet, path: "/orders/" + pathEscape(id), out: &out}); err != nil {
		return nil, err
	}
	o := out.entity()
	return &o, nil
}

func (r *OrderRepository) Track(ctx context.Context, id string) (*entity.OrderTracking, error) {
	var out trackingWire
	if err := r.c.do(ctx, call{op: "track order", method: http.MethodGet, path: "/orders/" + pathEscape(id) + "/tracking", out: &out}); err != nil {
		return nil, err
	}
	t := out.entity()
	return &t, nil
}

// DeliveryRepository entregas asignadas a repartidores.
type DeliveryRepository struct {
	c *Client
}

// NewDeliveryRepository construye el repositorio.
func NewDeliveryRepository(c *Client) *DeliveryRepository { return &DeliveryRepository{c: c} }

func (r *DeliveryRepository) ListByCourier(ctx context.Context, courierRef string) ([]entity.Delivery, error) {
	var out []deliveryWire
	err := r.c.do(ctx, call{op: "list deliveries", method: http.MethodGet, path: "/couriers/" + pathEscape(courierRef) + "/deliveries", out: &out})
	if err != nil {
		return nil, err
	}
	deliveries := make([]entity.Delivery, 0, len(out))
	for _, w := range out {
		deliveries = append(deliveries, entity.Delivery{
			OrderID: w.OrderID, Address: w.Address, Status: w.Status, EmployeeRef: w.EmployeeRef, AssignedAt: w.AssignedAt,
		})
	}
	return deliveries, nil
}

func (r *DeliveryRepository) MarkDelivered(ctx context.Context, orderID string) error {
	return r.c.do(ctx, call{op: "mark delivered", method: http.MethodPost, path: "/orders/" + pathEscape(orderID) + "/delivered"})
}
