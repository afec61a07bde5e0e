package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meal plato del catálogo preparado por un chef. Price está en la moneda base del servidor.
type Meal struct {
	ID          string
	ChefRef     string
	ChefName    string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Available   bool
	ImageURL    string
	UpdatedAt   time.Time
}

// MealInput datos que un chef envía para crear o actualizar un plato.
type MealInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Available   bool
	ImageURL    string
}

// Coordinates posición geográfica (grados decimales).
type Coordinates struct {
	Lat float64
	Lng float64
}
