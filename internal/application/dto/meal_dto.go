package dto

import "github.com/shopspring/decimal"

// MealRequest alta o edición de un plato por su chef.
type MealRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	ImageURL    string          `json:"image_url"`
}

// AvailabilityRequest cambio de disponibilidad de un plato.
type AvailabilityRequest struct {
	Available bool `json:"available"`
}
