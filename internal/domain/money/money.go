// Package money proyecta montos de la moneda base del servidor a la moneda elegida por el usuario.
// La proyección es solo de presentación: el monto base nunca se modifica ni vuelve a usarse
// para cálculos después de convertirse.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DisplayScale decimales de presentación.
const DisplayScale = 2

// Currency moneda de presentación. Rate = unidades de Code por 1 unidad de la moneda base.
type Currency struct {
	Code string
	Rate decimal.Decimal
}

// Identity moneda base (tasa 1).
func Identity(code string) Currency {
	return Currency{Code: code, Rate: decimal.NewFromInt(1)}
}

// Display monto listo para la vista.
type Display struct {
	Base   decimal.Decimal `json:"base"`
	Code   string          `json:"currency"`
	Amount decimal.Decimal `json:"amount"`
	Text   string          `json:"text"`
}

// NormalizeCode valida un código ISO 4217 y lo devuelve en mayúsculas.
func NormalizeCode(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("money: código de moneda %q: %w", code, err)
	}
	return unit.String(), nil
}

// Project convierte base con la tasa de cur y redondea a DisplayScale. base no se altera.
func Project(base decimal.Decimal, cur Currency) Display {
	rate := cur.Rate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	amount := base.Mul(rate).Round(DisplayScale)
	return Display{
		Base:   base,
		Code:   cur.Code,
		Amount: amount,
		Text:   cur.Code + " " + amount.StringFixed(DisplayScale),
	}
}

// Sum suma montos en moneda base.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
