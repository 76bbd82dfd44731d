package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
)

// RestaurantHandler CRUD de restaurantes (tenants).
type RestaurantHandler struct {
	uc   *usecase.RestaurantUseCase
	errs errorMapper
}

// NewRestaurantHandler construye el handler de restaurantes.
func NewRestaurantHandler(uc *usecase.RestaurantUseCase, errs errorMapper) *RestaurantHandler {
	return &RestaurantHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Crear restaurante
// @Description  Solo super_admin. Genera el código único y crea el perfil en la misma transacción.
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRestaurantRequest  true  "name, fechas, perfil"
// @Success      201   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restaurants [post]
func (h *RestaurantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRestaurantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar restaurantes visibles
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "límite"  default(20)
// @Param        offset  query  int  false  "offset"  default(0)
// @Success      200  {object}  dto.RestaurantListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	p := pageFrom(c)
	out, err := h.uc.List(c.UserContext(), GetUser(c), p.Limit, p.Offset)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener restaurante
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.RestaurantResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id} [get]
func (h *RestaurantHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar restaurante
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID"
// @Param        body  body  dto.UpdateRestaurantRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id} [put]
func (h *RestaurantHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRestaurantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar restaurante
// @Description  Borrado lógico: el restaurante queda inactivo y sus datos se conservan.
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.RestaurantResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id} [delete]
func (h *RestaurantHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
