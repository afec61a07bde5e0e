package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/infrastructure/platform"
)

// Cabeceras con la posición que reporta el dispositivo (geolocalización del navegador).
const (
	HeaderGeoLat = "X-Geo-Lat"
	HeaderGeoLng = "X-Geo-Lng"
)

// PositionMiddleware deja la posición del dispositivo en el contexto de la petición para el
// locator de plataforma. Sin cabeceras (o con valores no numéricos) no se fija nada y el
// locator responderá ubicación no disponible.
func PositionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Get(HeaderGeoLat), 64)
		lng, errLng := strconv.ParseFloat(c.Get(HeaderGeoLng), 64)
		if errLat == nil && errLng == nil {
			c.SetUserContext(platform.WithPosition(c.UserContext(), entity.Coordinates{Lat: lat, Lng: lng}))
		}
		return c.Next()
	}
}
