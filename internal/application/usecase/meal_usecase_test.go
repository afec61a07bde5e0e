package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/mocks"
)

func TestMealUseCase_List_SoloPlatosDelChef(t *testing.T) {
	repo := &mocks.MockMealRepository{ChefMeals: map[string][]entity.Meal{
		"C1": {{ID: "m1", ChefRef: "C1", Name: "Sopa", Price: decimal.NewFromInt(5)}},
		"C2": {{ID: "m2", ChefRef: "C2", Name: "Arroz", Price: decimal.NewFromInt(7)}},
	}}
	c, wf := newInfra()
	uc := usecase.NewMealUseCase(repo, c, wf, identityStub{chefC}, usdDisplay{})

	res, err := uc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "m1", res.Items[0].ID)
	assert.Equal(t, "USD 5.00", res.Items[0].Price.Text)
	assert.Equal(t, string(cache.StatusReady), res.Cache.Status)
}

func TestMealUseCase_SinIdentidadDeChef_Prohibido(t *testing.T) {
	c, wf := newInfra()
	uc := usecase.NewMealUseCase(&mocks.MockMealRepository{}, c, wf, identityStub{employeeE}, usdDisplay{})

	_, err := uc.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(context.Background(), dto.MealRequest{Name: "x", Category: "y", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMealUseCase_Create_InvalidaMenuYCatalogo(t *testing.T) {
	repo := &mocks.MockMealRepository{Catalog: []entity.Meal{{ID: "m1"}}}
	c, wf := newInfra()
	uc := usecase.NewMealUseCase(repo, c, wf, identityStub{chefC}, usdDisplay{})
	ctx := context.Background()
	_ = cache.Get(ctx, c, cache.KeyCatalog, repo.ListCatalog)
	_, err := uc.List(ctx)
	require.NoError(t, err)

	out, err := uc.Create(ctx, dto.MealRequest{Name: " Lasaña ", Category: "Italiana", Price: decimal.NewFromInt(12), Available: true})

	require.NoError(t, err)
	assert.True(t, out.Success)
	require.Len(t, repo.Created, 1)
	assert.Equal(t, "Lasaña", repo.Created[0].Name)
	assert.Equal(t, cache.StatusAbsent, cache.Peek[[]entity.Meal](c, cache.KeyCatalog).Status)
	assert.Equal(t, cache.StatusAbsent, cache.Peek[[]entity.Meal](c, cache.KeyChefMeals("C1")).Status)
}

func TestMealUseCase_Create_ValidacionSinLlamadaRemota(t *testing.T) {
	repo := &mocks.MockMealRepository{}
	c, wf := newInfra()
	uc := usecase.NewMealUseCase(repo, c, wf, identityStub{chefC}, usdDisplay{})

	out, err := uc.Create(context.Background(), dto.MealRequest{Name: "", Price: decimal.Zero})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.Created)
	assert.Contains(t, out.FieldErrors, "name")
	assert.Contains(t, out.FieldErrors, "category")
	assert.Contains(t, out.FieldErrors, "price")
	_, published := wf.Board().Latest()
	assert.False(t, published)
}

func TestMealUseCase_SetAvailability_FalloConservaCache(t *testing.T) {
	repo := &mocks.MockMealRepository{ChefMeals: map[string][]entity.Meal{"C1": {{ID: "m1"}}}}
	c, wf := newInfra()
	uc := usecase.NewMealUseCase(repo, c, wf, identityStub{chefC}, usdDisplay{})
	ctx := context.Background()
	_, err := uc.List(ctx)
	require.NoError(t, err)
	repo.WriteErr = &domain.RemoteError{Op: "availability", Message: "Plato bloqueado", Rejected: true}

	out, err := uc.SetAvailability(ctx, "m1", false)

	assert.ErrorIs(t, err, domain.ErrRemoteRejected)
	assert.False(t, out.Success)
	assert.Equal(t, "Plato bloqueado", out.Message)
	assert.Equal(t, cache.StatusReady, cache.Peek[[]entity.Meal](c, cache.KeyChefMeals("C1")).Status)
}
