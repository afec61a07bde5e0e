package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
)

// CompanyHandler planes visibles para la empresa y su suscripción.
type CompanyHandler struct {
	plans *usecase.PlanUseCase
	uc    *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(plans *usecase.PlanUseCase, uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{plans: plans, uc: uc}
}

// Plans godoc
// @Summary      Planes activos disponibles
// @Tags         company
// @Produce      json
// @Success      200  {object}  dto.PlanListResponse
// @Router       /company/plans [get]
func (h *CompanyHandler) Plans(c *fiber.Ctx) error {
	out, err := h.plans.List(c.UserContext(), true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Subscription godoc
// @Summary      Suscripción vigente de la empresa
// @Tags         company
// @Produce      json
// @Success      200  {object}  dto.SubscriptionResponse
// @Router       /company/subscription [get]
func (h *CompanyHandler) Subscription(c *fiber.Ctx) error {
	out, err := h.uc.Subscription(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Subscribe godoc
// @Summary      Suscribirse a un plan
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubscribeRequest  true  "plan_id"
// @Success      200  {object}  dto.MutationOutcome
// @Failure      422  {object}  dto.MutationOutcome
// @Router       /company/subscription [post]
func (h *CompanyHandler) Subscribe(c *fiber.Ctx) error {
	var in dto.SubscribeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outcome, err := h.uc.Subscribe(c.UserContext(), in.PlanID)
	return writeOutcome(c, outcome, err)
}
