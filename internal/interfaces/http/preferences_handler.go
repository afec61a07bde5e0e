package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
)

// PreferencesHandler moneda de presentación.
type PreferencesHandler struct {
	uc *usecase.CurrencyUseCase
}

func NewPreferencesHandler(uc *usecase.CurrencyUseCase) *PreferencesHandler {
	return &PreferencesHandler{uc: uc}
}

// Currency godoc
// @Summary      Moneda de presentación vigente
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  dto.CurrencyResponse
// @Router       /preferences [get]
func (h *PreferencesHandler) Currency(c *fiber.Ctx) error {
	return c.JSON(h.uc.Current(c.UserContext()))
}

// SetCurrency godoc
// @Summary      Cambiar moneda de presentación
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CurrencyRequest  true  "código ISO 4217"
// @Success      200  {object}  dto.CurrencyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /preferences [put]
func (h *PreferencesHandler) SetCurrency(c *fiber.Ctx) error {
	var in dto.CurrencyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetCurrency(c.UserContext(), in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
