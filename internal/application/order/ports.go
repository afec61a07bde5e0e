package order

import (
	"context"
	"time"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/money"
)

// IdentitySource identidad vigente (Identity Store).
type IdentitySource interface {
	Current() entity.Identity
}

// DisplayCurrency moneda de presentación vigente.
type DisplayCurrency interface {
	Display(ctx context.Context) money.Currency
}

// ReceiptLine línea del comprobante ya proyectada a la moneda de presentación.
type ReceiptLine struct {
	MealName string
	Price    money.Display
}

// Receipt datos del comprobante de un pedido.
type Receipt struct {
	OrderID     string
	EmployeeRef string
	Status      string
	CreatedAt   time.Time
	IssuedAt    time.Time
	Lines       []ReceiptLine
	Total       money.Display
}

// ReceiptGenerator genera el PDF del comprobante.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, r Receipt) ([]byte, error)
}
