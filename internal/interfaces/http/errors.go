package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden relevante: el primer error que coincide con errors.Is gana.
var errorMappings = []errorMapping{
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrTerminalStatus, fiber.StatusConflict, "TERMINAL_STATUS"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrAdvanceStatusMismatch, fiber.StatusUnprocessableEntity, "ADVANCE_STATUS_MISMATCH"},
	{domain.ErrDiscountExceedsTotal, fiber.StatusUnprocessableEntity, "DISCOUNT_EXCEEDS_TOTAL"},
	{domain.ErrOverpaid, fiber.StatusUnprocessableEntity, "OVERPAID"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// writeError traduce un error de dominio a status HTTP + dto.ErrorResponse. Los errores
// desconocidos se registran y salen como 500 con un mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := resolveError(c, err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// writeSubmitError igual que writeError pero con el sobre {status, message, data} de los envíos de ventas.
func writeSubmitError(c *fiber.Ctx, err error) error {
	status, code, msg := resolveError(c, err)
	return c.Status(status).JSON(dto.SubmitResponse{
		Status:  dto.SubmitStatusError,
		Message: msg,
		Data:    dto.ErrorResponse{Code: code, Message: msg},
	})
}

func resolveError(c *fiber.Ctx, err error) (int, string, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code, err.Error()
		}
	}
	requestLogger(c).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return fiber.StatusInternalServerError, "INTERNAL", "error interno, intente más tarde"
}
