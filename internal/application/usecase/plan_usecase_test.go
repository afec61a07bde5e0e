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

func samplePlans() []entity.Plan {
	return []entity.Plan{
		{ID: "p1", Name: "Básico", MonthlyPrice: decimal.NewFromInt(100), MealsPerDay: 1, Active: true},
		{ID: "p2", Name: "Legacy", MonthlyPrice: decimal.NewFromInt(80), MealsPerDay: 1, Active: false},
	}
}

func TestPlanUseCase_List_FiltraInactivos(t *testing.T) {
	repo := &mocks.MockPlanRepository{Plans: samplePlans()}
	c, wf := newInfra()
	uc := usecase.NewPlanUseCase(repo, c, wf, usdDisplay{})
	ctx := context.Background()

	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	active, err := uc.List(ctx, true)
	require.NoError(t, err)

	assert.Len(t, all.Items, 2)
	require.Len(t, active.Items, 1)
	assert.Equal(t, "p1", active.Items[0].ID)
	assert.Equal(t, 1, repo.ListCalls, "la segunda lectura sale de la caché")
}

func TestPlanUseCase_List_ErrorSinValor(t *testing.T) {
	repo := &mocks.MockPlanRepository{ListErr: &domain.RemoteError{Op: "plans", Err: context.DeadlineExceeded}}
	c, wf := newInfra()
	uc := usecase.NewPlanUseCase(repo, c, wf, usdDisplay{})

	_, err := uc.List(context.Background(), false)

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestPlanUseCase_Create_InvalidaPlanes(t *testing.T) {
	repo := &mocks.MockPlanRepository{Plans: samplePlans()}
	c, wf := newInfra()
	uc := usecase.NewPlanUseCase(repo, c, wf, usdDisplay{})
	ctx := context.Background()
	_, err := uc.List(ctx, false)
	require.NoError(t, err)

	out, err := uc.Create(ctx, dto.PlanRequest{Name: "Premium", MonthlyPrice: decimal.NewFromInt(200), MealsPerDay: 2, Active: true})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, cache.StatusAbsent, cache.Peek[[]entity.Plan](c, cache.KeyPlans).Status)

	res, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
	assert.Equal(t, 2, repo.ListCalls)
}

func TestPlanUseCase_Create_Validacion(t *testing.T) {
	repo := &mocks.MockPlanRepository{}
	c, wf := newInfra()
	uc := usecase.NewPlanUseCase(repo, c, wf, usdDisplay{})

	out, err := uc.Create(context.Background(), dto.PlanRequest{Name: " ", MonthlyPrice: decimal.NewFromInt(-1)})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.Created)
	assert.Len(t, out.FieldErrors, 3)
}

func TestPlanUseCase_Update_InvalidaSuscripciones(t *testing.T) {
	repo := &mocks.MockPlanRepository{
		Plans:         samplePlans(),
		Subscriptions: map[string]entity.Subscription{"CO-1": {CompanyRef: "CO-1", PlanID: "p1", PlanName: "Básico", Status: "active"}},
	}
	c, wf := newInfra()
	plans := usecase.NewPlanUseCase(repo, c, wf, usdDisplay{})
	company := usecase.NewCompanyUseCase(repo, c, wf, identityStub{companyCO})
	ctx := context.Background()
	_, err := company.Subscription(ctx)
	require.NoError(t, err)

	_, err = plans.Update(ctx, "p1", dto.PlanRequest{Name: "Básico+", MonthlyPrice: decimal.NewFromInt(110), MealsPerDay: 1, Active: true})

	require.NoError(t, err)
	assert.Equal(t, cache.StatusAbsent, cache.Peek[*entity.Subscription](c, cache.KeySubscription("CO-1")).Status)
}

func TestPlanUseCase_Delete(t *testing.T) {
	repo := &mocks.MockPlanRepository{Plans: samplePlans()}
	c, wf := newInfra()
	uc := usecase.NewPlanUseCase(repo, c, wf, usdDisplay{})

	out, err := uc.Delete(context.Background(), "p2")

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, []string{"p2"}, repo.Deleted)
}
