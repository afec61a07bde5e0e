package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/corporate-meals/internal/application/ports"
)

var _ ports.CurrencyRates = (*CurrencyRates)(nil)

// CurrencyRates tasas de cambio publicadas por la API.
type CurrencyRates struct {
	c *Client
}

// NewCurrencyRates construye la fuente de tasas.
func NewCurrencyRates(c *Client) *CurrencyRates { return &CurrencyRates{c: c} }

// Rates unidades de cada moneda por 1 unidad de base.
func (r *CurrencyRates) Rates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	var out struct {
		Base  string                     `json:"base"`
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	err := r.c.do(ctx, call{op: "currency rates", method: http.MethodGet, path: "/currency/rates", query: url.Values{"base": {base}}, out: &out})
	if err != nil {
		return nil, err
	}
	if out.Rates == nil {
		out.Rates = map[string]decimal.Decimal{}
	}
	return out.Rates, nil
}
