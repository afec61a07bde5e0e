package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
)

// PlanHandler gestión de planes (admin).
type PlanHandler struct {
	uc *usecase.PlanUseCase
}

func NewPlanHandler(uc *usecase.PlanUseCase) *PlanHandler {
	return &PlanHandler{uc: uc}
}

// List godoc
// @Summary      Todos los planes
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.PlanListResponse
// @Router       /admin/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), false)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear plan
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanRequest  true  "name, monthly_price, meals_per_day"
// @Success      200  {object}  dto.MutationOutcome
// @Failure      422  {object}  dto.MutationOutcome
// @Router       /admin/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outcome, err := h.uc.Create(c.UserContext(), in)
	return writeOutcome(c, outcome, err)
}

// Update godoc
// @Summary      Editar plan
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del plan"
// @Param        body  body  dto.PlanRequest  true  "name, monthly_price, meals_per_day"
// @Success      200  {object}  dto.MutationOutcome
// @Router       /admin/plans/{id} [put]
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outcome, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	return writeOutcome(c, outcome, err)
}

// Delete godoc
// @Summary      Eliminar plan
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "ID del plan"
// @Success      200  {object}  dto.MutationOutcome
// @Router       /admin/plans/{id} [delete]
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	outcome, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	return writeOutcome(c, outcome, err)
}
