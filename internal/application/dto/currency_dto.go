package dto

// CurrencyRequest cambio de moneda de visualización.
type CurrencyRequest struct {
	Code string `json:"code" validate:"required,len=3"`
}

// CurrencyResponse moneda de visualización vigente.
type CurrencyResponse struct {
	Base string `json:"base"`
	Code string `json:"code"`
	Rate string `json:"rate"`
}
