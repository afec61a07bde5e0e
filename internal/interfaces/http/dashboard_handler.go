package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/access"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
)

// DashboardHandler paneles por rol y disposición de la última mutación.
type DashboardHandler struct {
	ids      access.IdentitySource
	registry *access.Registry
	board    *mutation.Board
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(ids access.IdentitySource, registry *access.Registry, board *mutation.Board) *DashboardHandler {
	return &DashboardHandler{ids: ids, registry: registry, board: board}
}

// Show godoc
// @Summary      Panel del rol
// @Description  Lista las vistas protegidas a las que la identidad vigente puede entrar.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /admin/dashboard [get]
// @Router       /company/dashboard [get]
// @Router       /employee/dashboard [get]
// @Router       /chef/dashboard [get]
// @Router       /delivery/dashboard [get]
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	id := h.ids.Current()
	out := dto.DashboardResponse{Views: []string{}}
	if id == nil {
		return c.JSON(out)
	}
	out.Role = string(id.Role())
	for _, v := range h.registry.Views() {
		req, _ := h.registry.Requirement(v)
		if req.IsPublic() {
			continue
		}
		if access.CanEnter(req, id, false).Allowed() {
			out.Views = append(out.Views, string(v))
		}
	}
	if o, ok := h.board.Latest(); ok {
		out.Disposition = &o
	}
	return c.JSON(out)
}

// Disposition godoc
// @Summary      Disposición pendiente de la última mutación
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.MutationOutcome
// @Success      204
// @Router       /disposition [get]
func (h *DashboardHandler) Disposition(c *fiber.Ctx) error {
	o, ok := h.board.Latest()
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(o)
}

// Dismiss godoc
// @Summary      Descartar la disposición mostrada
// @Tags         dashboard
// @Param        id  path  string  true  "id de la disposición"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /disposition/{id} [delete]
func (h *DashboardHandler) Dismiss(c *fiber.Ctx) error {
	if !h.board.Dismiss(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la disposición ya no está vigente"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
