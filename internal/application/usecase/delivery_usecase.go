package usecase

import (
	"context"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

// DeliveryUseCase entregas asignadas al repartidor vigente.
type DeliveryUseCase struct {
	deliveries repository.DeliveryRepository
	cache      *cache.Cache
	wf         *mutation.Workflow
	ids        IdentitySource
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(deliveries repository.DeliveryRepository, c *cache.Cache, wf *mutation.Workflow, ids IdentitySource) *DeliveryUseCase {
	return &DeliveryUseCase{deliveries: deliveries, cache: c, wf: wf, ids: ids}
}

// List entregas pendientes del repartidor.
func (uc *DeliveryUseCase) List(ctx context.Context) (*dto.DeliveryListResponse, error) {
	ref, err := courierRef(uc.ids)
	if err != nil {
		return nil, err
	}
	entry := cache.Get(ctx, uc.cache, cache.KeyDeliveries(ref), func(ctx context.Context) ([]entity.Delivery, error) {
		return uc.deliveries.ListByCourier(ctx, ref)
	})
	if !entry.HasValue && entry.Status == cache.StatusError {
		return nil, entry.Err
	}
	items := make([]dto.DeliveryResponse, 0, len(entry.Value))
	for _, d := range entry.Value {
		items = append(items, dto.DeliveryResponse{
			OrderID:     d.OrderID,
			Address:     d.Address,
			Status:      d.Status,
			EmployeeRef: d.EmployeeRef,
			AssignedAt:  d.AssignedAt,
		})
	}
	return &dto.DeliveryListResponse{Items: items, Cache: dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, entry.Err)}, nil
}

// MarkDelivered marca un pedido como entregado. Invalida las entregas, el seguimiento y el
// detalle del pedido, y los historiales (el del empleado no se conoce desde aquí).
func (uc *DeliveryUseCase) MarkDelivered(ctx context.Context, orderID string) (dto.MutationOutcome, error) {
	ref, err := courierRef(uc.ids)
	if err != nil {
		return dto.MutationOutcome{}, err
	}
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:               "delivery.mark_delivered",
		Scope:              "delivery:" + orderID,
		Do:                 func(ctx context.Context) error { return uc.deliveries.MarkDelivered(ctx, orderID) },
		Invalidate:         []cache.Key{cache.KeyDeliveries(ref), cache.KeyOrderTracking(orderID), cache.KeyOrder(orderID)},
		InvalidatePrefixes: []string{cache.PrefixOrderHistory},
		SuccessMessage:     "Entrega registrada.",
	})
}
