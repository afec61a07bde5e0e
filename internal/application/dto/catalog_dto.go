package dto

import (
	"time"

	"github.com/jhoicas/corporate-meals/internal/domain/money"
)

// CatalogQuery filtros del catálogo (query string).
type CatalogQuery struct {
	Text         string `query:"q"`
	Category     string `query:"category"`
	Availability string `query:"availability"` // all | available | unavailable
}

// MealResponse plato con su precio proyectado a la moneda elegida.
type MealResponse struct {
	ID          string        `json:"id"`
	ChefRef     string        `json:"chef_ref"`
	ChefName    string        `json:"chef_name"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Price       money.Display `json:"price"`
	Available   bool          `json:"available"`
	Selected    bool          `json:"selected"`
	ImageURL    string        `json:"image_url,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CatalogResponse vista del catálogo filtrado.
type CatalogResponse struct {
	Items      []MealResponse `json:"items"`
	Categories []string       `json:"categories"`
	Selected   int            `json:"selected"`
	Cache      CacheMeta      `json:"cache"`
}

// MealListResponse listado simple de platos (chef, cercanos).
type MealListResponse struct {
	Items []MealResponse `json:"items"`
	Cache CacheMeta      `json:"cache"`
}

// ToggleRequest alta/baja de un plato en la selección.
type ToggleRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// SelectionResponse selección vigente con su total proyectado.
type SelectionResponse struct {
	Items []string      `json:"items"`
	Count int           `json:"count"`
	Total money.Display `json:"total"`
}

// NearbyQuery búsqueda de platos cercanos: dirección o posición del dispositivo.
type NearbyQuery struct {
	Address  string  `query:"address"`
	RadiusKm float64 `query:"radius_km"`
}
