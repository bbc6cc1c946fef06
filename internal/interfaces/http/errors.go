package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/pkg/logger"
)

// Códigos de error en el cuerpo de las respuestas.
const (
	CodeValidation   = "VALIDATION"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInUse        = "IN_USE"
	CodeDuplicate    = "DUPLICATE"
	CodeInternal     = "INTERNAL"
)

// MsgInternal único mensaje que ve el cliente ante un error no previsto.
const MsgInternal = "error interno"

// ErrorHandler traduce los errores de dominio a respuestas HTTP. Los handlers solo
// devuelven el error; aquí se decide el status y el cuerpo. Los 500 se registran con
// la causa real y al cliente solo le llega MsgInternal.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := errorResponse(err)
		if status == fiber.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", requestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
		}
		return c.Status(status).JSON(body)
	}
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		fields   domain.FieldErrors
		conflict *domain.ConflictError
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &fields):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code: CodeValidation, Message: domain.ErrValidation.Error(), Fields: fields,
		}
	case errors.As(err, &conflict):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code: CodeConflict, Message: conflict.Reason, Fields: map[string][]string{conflict.Field: {conflict.Reason}},
		}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: detail(err, domain.ErrNotFound)}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Message: domain.ErrForbidden.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthorized, Message: detail(err, domain.ErrUnauthorized)}
	case errors.Is(err, domain.ErrInUse):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInUse, Message: domain.ErrInUse.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeDuplicate, Message: domain.ErrDuplicate.Error()}
	case errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError:
		// rutas inexistentes, método no permitido, cuerpo demasiado grande...
		return fiberErr.Code, dto.ErrorResponse{Code: httpCode(fiberErr.Code), Message: fiberErr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: MsgInternal}
}

// detail devuelve el mensaje de un DetailError o el del centinela.
func detail(err, sentinel error) string {
	var d *domain.DetailError
	if errors.As(err, &d) {
		return d.Detail
	}
	return sentinel.Error()
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	return "BAD_REQUEST"
}

// MsgBadBody cuerpo JSON ilegible.
const MsgBadBody = "cuerpo inválido"

func errBody() error { return domain.BadRequest(MsgBadBody) }
