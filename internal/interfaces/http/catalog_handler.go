package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/catalog"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
)

// CatalogHandler catálogo del empleado y su selección.
type CatalogHandler struct {
	uc     *catalog.UseCase
	nearby *usecase.NearbyUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase, nearby *usecase.NearbyUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc, nearby: nearby}
}

// Browse godoc
// @Summary      Catálogo filtrado
// @Tags         catalog
// @Produce      json
// @Param        q             query  string  false  "texto (nombre, descripción o chef)"
// @Param        category      query  string  false  "categoría o all"
// @Param        availability  query  string  false  "all | available | unavailable"
// @Success      200  {object}  dto.CatalogResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /employee/catalog [get]
func (h *CatalogHandler) Browse(c *fiber.Ctx) error {
	var q dto.CatalogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	avail, err := catalog.ParseAvailability(q.Availability)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Browse(c.UserContext(), catalog.Filter{
		Text:         q.Text,
		Category:     q.Category,
		Availability: avail,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Selection godoc
// @Summary      Selección vigente
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /employee/selection [get]
func (h *CatalogHandler) Selection(c *fiber.Ctx) error {
	return c.JSON(h.uc.Selection(c.UserContext()))
}

// Toggle godoc
// @Summary      Añadir o quitar un plato de la selección
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ToggleRequest  true  "item_id"
// @Success      200  {object}  dto.SelectionResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /employee/selection [post]
func (h *CatalogHandler) Toggle(c *fiber.Ctx) error {
	var in dto.ToggleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.ItemID = strings.TrimSpace(in.ItemID)
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido"})
	}
	if _, err := h.uc.Toggle(c.UserContext(), in.ItemID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.uc.Selection(c.UserContext()))
}

// Clear godoc
// @Summary      Vaciar la selección
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /employee/selection [delete]
func (h *CatalogHandler) Clear(c *fiber.Ctx) error {
	h.uc.Clear()
	return c.JSON(h.uc.Selection(c.UserContext()))
}

// Nearby godoc
// @Summary      Platos cercanos
// @Description  Usa la dirección indicada o, si falta, la posición del dispositivo (cabeceras X-Geo-Lat / X-Geo-Lng).
// @Tags         catalog
// @Produce      json
// @Param        address    query  string  false  "dirección a geocodificar"
// @Param        radius_km  query  number  false  "radio de búsqueda (km)"
// @Success      200  {object}  dto.MealListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /employee/nearby [get]
func (h *CatalogHandler) Nearby(c *fiber.Ctx) error {
	var q dto.NearbyQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.nearby.Nearby(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
