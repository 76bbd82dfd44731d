package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
)

// ProfileHandler perfiles de contacto de restaurantes.
type ProfileHandler struct {
	uc   *usecase.ProfileUseCase
	errs errorMapper
}

// NewProfileHandler construye el handler de perfiles.
func NewProfileHandler(uc *usecase.ProfileUseCase, errs errorMapper) *ProfileHandler {
	return &ProfileHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar perfiles visibles
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "límite"  default(20)
// @Param        offset  query  int  false  "offset"  default(0)
// @Success      200  {object}  dto.ProfileListResponse
// @Router       /api/profiles [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	p := pageFrom(c)
	out, err := h.uc.List(c.UserContext(), GetUser(c), p.Limit, p.Offset)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener perfil de un restaurante
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        restaurant_id  path  string  true  "ID del restaurante"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{restaurant_id} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUser(c), c.Params("restaurant_id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar perfil de un restaurante
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        restaurant_id  path  string                    true  "ID del restaurante"
// @Param        body           body  dto.UpdateProfileRequest  true  "teléfono, dirección, web"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{restaurant_id} [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), c.Params("restaurant_id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
