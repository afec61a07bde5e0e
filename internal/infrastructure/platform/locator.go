// Package platform adapta lo que entrega el navegador (geolocalización) a los puertos del cliente.
package platform

import (
	"context"
	"fmt"

	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

var _ ports.Locator = ContextLocator{}

type positionKey struct{}

// WithPosition adjunta a ctx la posición que compartió el navegador en esta petición.
func WithPosition(ctx context.Context, at entity.Coordinates) context.Context {
	return context.WithValue(ctx, positionKey{}, at)
}

// ContextLocator lee la posición adjuntada con WithPosition. Si el navegador no la compartió
// (permiso denegado o no soportado) devuelve domain.ErrGeolocationUnavailable.
type ContextLocator struct{}

func (ContextLocator) CurrentPosition(ctx context.Context) (entity.Coordinates, error) {
	at, ok := ctx.Value(positionKey{}).(entity.Coordinates)
	if !ok {
		return entity.Coordinates{}, fmt.Errorf("%w: el navegador no compartió la ubicación", domain.ErrGeolocationUnavailable)
	}
	if at.Lat < -90 || at.Lat > 90 || at.Lng < -180 || at.Lng > 180 {
		return entity.Coordinates{}, fmt.Errorf("%w: coordenadas fuera de rango", domain.ErrGeolocationUnavailable)
	}
	return at, nil
}
