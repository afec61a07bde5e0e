package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
)

// MealHandler menú del chef.
type MealHandler struct {
	uc *usecase.MealUseCase
}

// NewMealHandler construye el handler.
func NewMealHandler(uc *usecase.MealUseCase) *MealHandler {
	return &MealHandler{uc: uc}
}

// List godoc
// @Summary      Platos del chef
// @Tags         chef
// @Produce      json
// @Success      200  {object}  dto.MealListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /chef/meals [get]
func (h *MealHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear plato
// @Tags         chef
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MealRequest  true  "name, category, price"
// @Success      200  {object}  dto.MutationOutcome
// @Failure      422  {object}  dto.MutationOutcome
// @Router       /chef/meals [post]
func (h *MealHandler) Create(c *fiber.Ctx) error {
	var in dto.MealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outcome, err := h.uc.Create(c.UserContext(), in)
	return writeOutcome(c, outcome, err)
}

// Update godoc
// @Summary      Editar plato
// @Tags         chef
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del plato"
// @Param        body  body  dto.MealRequest  true  "name, category, price"
// @Success      200  {object}  dto.MutationOutcome
// @Failure      422  {object}  dto.MutationOutcome
// @Router       /chef/meals/{id} [put]
func (h *MealHandler) Update(c *fiber.Ctx) error {
	var in dto.MealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outcome, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	return writeOutcome(c, outcome, err)
}

// Delete godoc
// @Summary      Eliminar plato
// @Tags         chef
// @Produce      json
// @Param        id  path  string  true  "ID del plato"
// @Success      200  {object}  dto.MutationOutcome
// @Router       /chef/meals/{id} [delete]
func (h *MealHandler) Delete(c *fiber.Ctx) error {
	outcome, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	return writeOutcome(c, outcome, err)
}

// SetAvailability godoc
// @Summary      Cambiar disponibilidad de un plato
// @Tags         chef
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del plato"
// @Param        body  body  dto.AvailabilityRequest  true  "available"
// @Success      200  {object}  dto.MutationOutcome
// @Router       /chef/meals/{id}/availability [patch]
func (h *MealHandler) SetAvailability(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outcome, err := h.uc.SetAvailability(c.UserContext(), c.Params("id"), in.Available)
	return writeOutcome(c, outcome, err)
}
