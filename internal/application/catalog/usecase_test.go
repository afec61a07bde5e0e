package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/catalog"
	"github.com/jhoicas/corporate-meals/internal/application/selection"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/mocks"
	"github.com/jhoicas/corporate-meals/internal/domain/money"
)

type fixedCurrency struct{ cur money.Currency }

func (f fixedCurrency) Display(context.Context) money.Currency { return f.cur }

func newUseCase() (*catalog.UseCase, *mocks.MockMealRepository, *selection.Set) {
	repo := &mocks.MockMealRepository{Catalog: fixture()}
	sel := selection.New()
	eur := money.Currency{Code: "EUR", Rate: decimal.RequireFromString("0.5")}
	return catalog.NewUseCase(cache.New(cache.Config{}), repo, sel, fixedCurrency{eur}), repo, sel
}

func TestBrowse_FiltraProyectaYMarcaSeleccion(t *testing.T) {
	uc, repo, sel := newUseCase()
	sel.Toggle("2")

	resp, err := uc.Browse(context.Background(), catalog.Filter{Text: "chicken", Availability: catalog.AvailabilityAvailable})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "EUR 6.00", resp.Items[0].Price.Text)
	assert.True(t, resp.Items[0].Price.Base.Equal(decimal.NewFromInt(12)), "el monto base no cambia")
	assert.False(t, resp.Items[0].Selected)
	assert.True(t, resp.Items[1].Selected)
	assert.Equal(t, 1, resp.Selected)
	assert.Equal(t, string(cache.StatusReady), resp.Cache.Status)

	// Re-filtrar no vuelve a la red.
	_, err = uc.Browse(context.Background(), catalog.Filter{Category: "main"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.CatalogCalls)
}

func TestBrowse_FalloSinValor_Error(t *testing.T) {
	repo := &mocks.MockMealRepository{ListErr: &domain.RemoteError{Op: "list catalog"}}
	uc := catalog.NewUseCase(cache.New(cache.Config{}), repo, selection.New(), fixedCurrency{money.Identity("USD")})

	_, err := uc.Browse(context.Background(), catalog.Filter{})
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestToggle_RechazaNoDisponibleYPermiteQuitar(t *testing.T) {
	uc, _, sel := newUseCase()
	ctx := context.Background()

	selected, err := uc.Toggle(ctx, "1")
	require.NoError(t, err)
	assert.True(t, selected)

	_, err = uc.Toggle(ctx, "3")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "item_id")
	assert.False(t, sel.Contains("3"))

	_, err = uc.Toggle(ctx, "99")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un plato que quedó no disponible sigue pudiendo quitarse.
	sel.Toggle("5")
	selected, err = uc.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.False(t, selected)
}

func TestSelection_TotalProyectado(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Toggle(ctx, "1")
	require.NoError(t, err)
	_, err = uc.Toggle(ctx, "2")
	require.NoError(t, err)

	resp := uc.Selection(ctx)
	assert.Equal(t, []string{"1", "2"}, resp.Items)
	assert.Equal(t, "EUR 10.50", resp.Total.Text)
}
