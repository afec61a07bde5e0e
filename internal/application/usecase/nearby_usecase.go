package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/catalog"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

const (
	defaultRadiusKm = 5.0
	maxRadiusKm     = 50.0
)

// NearbyUseCase platos cercanos a una dirección o a la posición del dispositivo.
type NearbyUseCase struct {
	geo      ports.GeoService
	locator  ports.Locator
	cache    *cache.Cache
	currency catalog.DisplayCurrency
}

// NewNearbyUseCase construye el caso de uso.
func NewNearbyUseCase(geo ports.GeoService, locator ports.Locator, c *cache.Cache, currency catalog.DisplayCurrency) *NearbyUseCase {
	return &NearbyUseCase{geo: geo, locator: locator, cache: c, currency: currency}
}

// Nearby resuelve la posición (dirección geocodificada o localizador) y lista los platos
// cercanos. Una denegación del localizador se devuelve como domain.ErrGeolocationUnavailable.
func (uc *NearbyUseCase) Nearby(ctx context.Context, q dto.NearbyQuery) (*dto.MealListResponse, error) {
	radius := q.RadiusKm
	switch {
	case radius <= 0:
		radius = defaultRadiusKm
	case radius > maxRadiusKm:
		radius = maxRadiusKm
	}

	at, err := uc.position(ctx, strings.TrimSpace(q.Address))
	if err != nil {
		return nil, err
	}
	entry := cache.Get(ctx, uc.cache, cache.KeyNearby(at, radius), func(ctx context.Context) ([]entity.Meal, error) {
		return uc.geo.NearbyMeals(ctx, at, radius)
	})
	if !entry.HasValue && entry.Status == cache.StatusError {
		return nil, entry.Err
	}
	cur := uc.currency.Display(ctx)
	items := make([]dto.MealResponse, 0, len(entry.Value))
	for _, m := range entry.Value {
		items = append(items, catalog.ToMealResponse(m, cur, false))
	}
	return &dto.MealListResponse{Items: items, Cache: dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, entry.Err)}, nil
}

func (uc *NearbyUseCase) position(ctx context.Context, address string) (entity.Coordinates, error) {
	if address != "" {
		at, err := uc.geo.Geocode(ctx, address)
		if err != nil {
			return entity.Coordinates{}, fmt.Errorf("nearby: geocodificar %q: %w", address, err)
		}
		return at, nil
	}
	at, err := uc.locator.CurrentPosition(ctx)
	if err != nil {
		return entity.Coordinates{}, fmt.Errorf("%w: %v", domain.ErrGeolocationUnavailable, err)
	}
	return at, nil
}
