package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// errorMapper traduce errores de los casos de uso a respuestas HTTP y registra rechazos y fallos.
type errorMapper struct {
	log *logger.Logger
}

// respond escribe el error. Los rechazos de acceso se registran en warn con su código;
// los errores no clasificados en error, sin exponer el detalle al cliente.
func (m errorMapper) respond(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	switch {
	case status >= fiber.StatusInternalServerError:
		m.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	case status == fiber.StatusForbidden || status == fiber.StatusUnauthorized:
		ev := m.log.Warn().Str("code", code).Str("method", c.Method()).Str("path", c.Path())
		if u := GetUser(c); u != nil {
			ev = ev.Str("user_id", u.ID).Str("role", u.Role.String())
		}
		ev.Msg("acceso denegado")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (status int, code, msg string) {
	if ae, ok := access.AsError(err); ok {
		if ae.Code == access.CodeUnauthenticated {
			return fiber.StatusUnauthorized, ae.Code, ae.Err.Error()
		}
		return fiber.StatusForbidden, ae.Code, ae.Err.Error()
	}
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, access.CodeUnauthenticated, "token inválido, expirado o usuario inactivo"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"
	case errors.Is(err, domain.ErrTooManyRequests):
		return fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS", "demasiados intentos, espere e intente de nuevo"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"
	case errors.Is(err, domain.ErrDuplicateTenantCode):
		return fiber.StatusConflict, "DUPLICATE_TENANT_CODE", "no se pudo generar un código único de restaurante"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", err.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno"
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func pageFrom(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
