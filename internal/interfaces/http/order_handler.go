package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/order"
	"github.com/jhoicas/corporate-meals/internal/domain"
)

// OrderHandler envío, historial, comprobante y seguimiento de pedidos.
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar la selección como pedido
// @Description  Con la selección vacía no se llama a la API y se responde 204.
// @Tags         orders
// @Produce      json
// @Success      201  {object}  dto.OrderSubmitResponse
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.OrderSubmitResponse
// @Failure      502  {object}  dto.OrderSubmitResponse
// @Router       /employee/orders [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.SubmitResponse(c.UserContext())
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) || out.Outcome.ID == "" {
			return writeError(c, err)
		}
		status, _ := classify(err)
		return c.Status(status).JSON(out)
	}
	if out.OrderID == "" {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de pedidos del empleado
// @Tags         orders
// @Produce      json
// @Success      200  {object}  dto.OrderHistoryResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /employee/orders [get]
func (h *OrderHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de un pedido propio
// @Tags         orders
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /employee/orders/receipt/{id} [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.Receipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Track godoc
// @Summary      Seguimiento de un pedido
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.TrackingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/tracking/{id} [get]
func (h *OrderHandler) Track(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id es requerido"})
	}
	out, err := h.uc.Track(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
