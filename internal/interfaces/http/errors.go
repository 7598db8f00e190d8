package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoicer/internal/application/dto"
	"github.com/jhoicas/invoicer/internal/application/viewflow"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// writeError traduce errores de dominio a la respuesta HTTP con su código estable.
// El orden importa: los errores con campos se revisan antes que los centinelas que envuelven.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var preview *viewflow.PreviewError
	var fields domain.ValidationErrors
	switch {
	case errors.As(err, &preview):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "PREVIEW_BLOCKED", Message: "la factura no está lista para vista previa", Fields: preview.Fields,
		})
	case errors.As(err, &fields):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: fields,
		})
	case errors.Is(err, domain.ErrIncompatibleMode):
		return errorJSON(c, fiber.StatusConflict, "INCOMPATIBLE_MODE", err)
	case errors.Is(err, domain.ErrNoDraft):
		return errorJSON(c, fiber.StatusConflict, "NO_DRAFT", err)
	case errors.Is(err, domain.ErrLimitReached):
		return errorJSON(c, fiber.StatusPaymentRequired, "LIMIT_REACHED", err)
	case errors.Is(err, domain.ErrSequenceUnavailable):
		return errorJSON(c, fiber.StatusServiceUnavailable, "SEQUENCE_UNAVAILABLE", err)
	case errors.Is(err, domain.ErrEnqueueFailed):
		return errorJSON(c, fiber.StatusServiceUnavailable, "ENQUEUE_FAILED", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "CONFLICT", err)
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no mapeado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func errorJSON(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// enqueueWarning texto para respuestas cuya operación local aplicó pero no pudo encolarse.
const enqueueWarning = "guardado localmente; la sincronización no pudo encolarse y se deberá reintentar"
