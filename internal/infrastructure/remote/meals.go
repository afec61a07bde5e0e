package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

var (
	_ repository.MealRepository = (*MealRepository)(nil)
	_ ports.GeoService          = (*GeoService)(nil)
)

// MealRepository colección remota de platos.
type MealRepository struct {
	c *Client
}

// NewMealRepository construye el repositorio.
func NewMealRepository(c *Client) *MealRepository { return &MealRepository{c: c} }

func (r *MealRepository) ListCatalog(ctx context.Context) ([]entity.Meal, error) {
	var out []mealWire
	if err := r.c.do(ctx, call{op: "list catalog", method: http.MethodGet, path: "/meals", out: &out}); err != nil {
		return nil, err
	}
	return meals(out), nil
}

func (r *MealRepository) ListByChef(ctx context.Context, chefRef string) ([]entity.Meal, error) {
	var out []mealWire
	err := r.c.do(ctx, call{op: "list chef meals", method: http.MethodGet, path: "/chefs/" + pathEscape(chefRef) + "/meals", out: &out})
	if err != nil {
		return nil, err
	}
	return meals(out), nil
}

func (r *MealRepository) Create(ctx context.Context, chefRef string, in entity.MealInput) (*entity.Meal, error) {
	var out mealWire
	err := r.c.do(ctx, call{
		op: "create meal", method: http.MethodPost, path: "/chefs/" + pathEscape(chefRef) + "/meals",
		body: toMealInputWire(in), out: &out,
	})
	if err != nil {
		return nil, err
	}
	m := out.entity()
	return &m, nil
}

func (r *MealRepository) Update(ctx context.Context, id string, in entity.MealInput) (*entity.Meal, error) {
	var out mealWire
	err := r.c.do(ctx, call{op: "update meal", method: http.MethodPut, path: "/meals/" + pathEscape(id), body: toMealInputWire(in), out: &out})
	if err != nil {
		return nil, err
	}
	m := out.entity()
	return &m, nil
}

func (r *MealRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, call{op: "delete meal", method: http.MethodDelete, path: "/meals/" + pathEscape(id)})
}

func (r *MealRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	return r.c.do(ctx, call{
		op: "set meal availability", method: http.MethodPatch, path: "/meals/" + pathEscape(id) + "/availability",
		body: map[string]bool{"available": available},
	})
}

// GeoService geocodificación y platos cercanos.
type GeoService struct {
	c *Client
}

// NewGeoService construye el servicio.
func NewGeoService(c *Client) *GeoService { return &GeoService{c: c} }

// Geocode traduce una dirección a coordenadas.
func (g *GeoService) Geocode(ctx context.Context, address string) (entity.Coordinates, error) {
	var out positionWire
	err := g.c.do(ctx, call{op: "geocode", method: http.MethodGet, path: "/geo/geocode", query: url.Values{"address": {address}}, out: &out})
	if err != nil {
		return entity.Coordinates{}, err
	}
	return entity.Coordinates{Lat: out.Lat, Lng: out.Lng}, nil
}

// NearbyMeals platos en radiusKm alrededor de at.
func (g *GeoService) NearbyMeals(ctx context.Context, at entity.Coordinates, radiusKm float64) ([]entity.Meal, error) {
	q := url.Values{
		"lat":       {strconv.FormatFloat(at.Lat, 'f', -1, 64)},
		"lng":       {strconv.FormatFloat(at.Lng, 'f', -1, 64)},
		"radius_km": {strconv.FormatFloat(radiusKm, 'f', -1, 64)},
	}
	var out []mealWire
	if err := g.c.do(ctx, call{op: "nearby meals", method: http.MethodGet, path: "/meals/nearby", query: q, out: &out}); err != nil {
		return nil, err
	}
	return meals(out), nil
}
