package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corporate-meals/internal/application/catalog"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// fixture de 5 platos: 3 mencionan "chicken" en nombre o descripción y uno de ellos no está disponible.
func fixture() []entity.Meal {
	return []entity.Meal{
		{ID: "1", Name: "Chicken Curry", Description: "Arroz basmati", Category: "main", ChefName: "Lucía", Price: decimal.NewFromInt(12), Available: true},
		{ID: "2", Name: "Caesar Salad", Description: "Grilled chicken, romaine", Category: "salad", ChefName: "Marco", Price: decimal.NewFromInt(9), Available: true},
		{ID: "3", Name: "Pollo asado", Description: "Roast CHICKEN with herbs", Category: "main", ChefName: "Lucía", Price: decimal.NewFromInt(11), Available: false},
		{ID: "4", Name: "Veggie Bowl", Description: "Quinoa y verduras", Category: "bowl", ChefName: "Ana", Price: decimal.NewFromInt(10), Available: true},
		{ID: "5", Name: "Tiramisú", Description: "Postre", Category: "dessert", ChefName: "Marco", Price: decimal.NewFromInt(6), Available: false},
	}
}

func ids(meals []entity.Meal) []string {
	out := make([]string, len(meals))
	for i, m := range meals {
		out[i] = m.ID
	}
	return out
}

// Escenario: "chicken" + categoría all + solo disponibles → exactamente 2 platos.
func TestApply_ChickenDisponibles(t *testing.T) {
	got := catalog.Apply(fixture(), catalog.Filter{Text: "chicken", Category: "all", Availability: catalog.AvailabilityAvailable})
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestApply_CombinaConAND(t *testing.T) {
	meals := fixture()
	cases := []struct {
		name   string
		filter catalog.Filter
		want   []string
	}{
		{"sin filtros", catalog.Filter{}, []string{"1", "2", "3", "4", "5"}},
		{"texto sin distinguir mayúsculas", catalog.Filter{Text: "  CHICKEN "}, []string{"1", "2", "3"}},
		{"texto en nombre del chef", catalog.Filter{Text: "lucía"}, []string{"1", "3"}},
		{"categoría", catalog.Filter{Category: "main"}, []string{"1", "3"}},
		{"categoría + no disponibles", catalog.Filter{Category: "main", Availability: catalog.AvailabilityUnavailable}, []string{"3"}},
		{"solo no disponibles", catalog.Filter{Availability: catalog.AvailabilityUnavailable}, []string{"3", "5"}},
		{"sin coincidencias", catalog.Filter{Text: "sushi"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(catalog.Apply(meals, tc.filter)))
		})
	}
}

func TestApply_NoModificaLaEntrada(t *testing.T) {
	meals := fixture()
	_ = catalog.Apply(meals, catalog.Filter{Text: "chicken"})
	assert.Equal(t, fixture(), meals)
}

func TestParseAvailability(t *testing.T) {
	for in, want := range map[string]catalog.Availability{
		"":                 catalog.AvailabilityAll,
		"all":              catalog.AvailabilityAll,
		"available-only":   catalog.AvailabilityAvailable,
		"Unavailable":      catalog.AvailabilityUnavailable,
		"unavailable-only": catalog.AvailabilityUnavailable,
	} {
		got, err := catalog.ParseAvailability(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := catalog.ParseAvailability("maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"bowl", "dessert", "main", "salad"}, catalog.Categories(fixture()))
}
