package serverutils

import (
	"equibot-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the structured error object returned to callers. Machine-
// readable kind, human message, opaque diagnostic code, never a stack trace.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandlerMiddleware converts AppErrors escaping the controllers into
// structured JSON responses with the status mapping from the error taxonomy.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr := apperror.As(err); appErr != nil {
			return ctx.Status(statusFor(appErr)).JSON(fiber.Map{
				"error": ErrorBody{
					Kind:    string(appErr.Kind),
					Message: appErr.Message,
					Code:    appErr.Code,
				},
			})
		}

		// Fiber's own errors (404, method not allowed, body parse failures).
		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": ErrorBody{Kind: "http_error", Message: fiberErr.Message},
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorBody{Kind: "internal_error", Message: "internal server error"},
		})
	}
}

func statusFor(err *apperror.AppError) int {
	switch err.Kind {
	case apperror.KindInvalidInput:
		return fiber.StatusBadRequest
	case apperror.KindRemoteUnavailable:
		return fiber.StatusBadGateway
	case apperror.KindRemoteError:
		// Propagate the engine's status so callers see the upstream failure.
		if err.Status >= 400 && err.Status <= 599 {
			return err.Status
		}
		return fiber.StatusBadGateway
	case apperror.KindRemoteMalformed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
