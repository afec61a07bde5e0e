package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
)

// FeedbackHandler opiniones: envío del empleado y listado del admin.
type FeedbackHandler struct {
	uc *usecase.FeedbackUseCase
}

func NewFeedbackHandler(uc *usecase.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

// List godoc
// @Summary      Opiniones recibidas
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.FeedbackListResponse
// @Router       /admin/feedback [get]
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar una opinión
// @Tags         employee
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FeedbackRequest  true  "rating 1-5, comment"
// @Success      200  {object}  dto.MutationOutcome
// @Failure      422  {object}  dto.MutationOutcome
// @Router       /employee/feedback [post]
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var in dto.FeedbackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outcome, err := h.uc.Submit(c.UserContext(), in)
	return writeOutcome(c, outcome, err)
}
