package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/mocks"
)

func TestDeliveryUseCase_List(t *testing.T) {
	repo := &mocks.MockDeliveryRepository{Assigned: map[string][]entity.Delivery{
		"D1": {{OrderID: "o1", Address: "Calle 1", Status: entity.OrderStatusOnTheWay, EmployeeRef: "E"}},
	}}
	c, wf := newInfra()
	uc := usecase.NewDeliveryUseCase(repo, c, wf, identityStub{courierD})

	res, err := uc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "o1", res.Items[0].OrderID)
}

func TestDeliveryUseCase_MarkDelivered_InvalidaSeguimientoEHistorial(t *testing.T) {
	repo := &mocks.MockDeliveryRepository{Assigned: map[string][]entity.Delivery{"D1": {{OrderID: "o1"}}}}
	c, wf := newInfra()
	uc := usecase.NewDeliveryUseCase(repo, c, wf, identityStub{courierD})
	ctx := context.Background()
	_, err := uc.List(ctx)
	require.NoError(t, err)
	history := func(context.Context) ([]entity.Order, error) { return []entity.Order{{ID: "o1"}}, nil }
	_ = cache.Get(ctx, c, cache.KeyOrderHistory("E"), history)
	tracking := func(context.Context) (*entity.OrderTracking, error) { return &entity.OrderTracking{OrderID: "o1"}, nil }
	_ = cache.Get(ctx, c, cache.KeyOrderTracking("o1"), tracking)

	out, err := uc.MarkDelivered(ctx, "o1")

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, []string{"o1"}, repo.Delivered)
	assert.Equal(t, cache.StatusAbsent, cache.Peek[[]entity.Delivery](c, cache.KeyDeliveries("D1")).Status)
	assert.Equal(t, cache.StatusAbsent, cache.Peek[[]entity.Order](c, cache.KeyOrderHistory("E")).Status)
	assert.Equal(t, cache.StatusAbsent, cache.Peek[*entity.OrderTracking](c, cache.KeyOrderTracking("o1")).Status)
}

func TestDeliveryUseCase_SoloRepartidores(t *testing.T) {
	c, wf := newInfra()
	uc := usecase.NewDeliveryUseCase(&mocks.MockDeliveryRepository{}, c, wf, identityStub{employeeE})

	_, err := uc.MarkDelivered(context.Background(), "o1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
