package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/usecase"
)

// DeliveryHandler pedidos asignados al repartidor.
type DeliveryHandler struct {
	uc *usecase.DeliveryUseCase
}

func NewDeliveryHandler(uc *usecase.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// List godoc
// @Summary      Entregas asignadas
// @Tags         delivery
// @Produce      json
// @Success      200  {object}  dto.DeliveryListResponse
// @Router       /delivery/orders [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkDelivered godoc
// @Summary      Marcar pedido como entregado
// @Tags         delivery
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.MutationOutcome
// @Router       /delivery/orders/{id}/delivered [post]
func (h *DeliveryHandler) MarkDelivered(c *fiber.Ctx) error {
	outcome, err := h.uc.MarkDelivered(c.UserContext(), c.Params("id"))
	return writeOutcome(c, outcome, err)
}
