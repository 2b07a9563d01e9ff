package serverutils

import (
	"errors"

	"po-intake-be/pkg/doccheck"
	"po-intake-be/pkg/intake"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// JSON envelope. Pipeline errors keep their stage-marked message intact so
// the client always knows how far a submission got.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		var guardErr *intake.GuardError
		var validationErr *intake.ValidationError
		var uploadErr *intake.UploadError
		var notificationErr *intake.NotificationError
		var registrationErr *intake.RegistrationError

		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case errors.As(err, &guardErr):
			status = fiber.StatusConflict
		case errors.As(err, &validationErr):
			status = fiber.StatusUnprocessableEntity
		case errors.As(err, &uploadErr),
			errors.As(err, &notificationErr),
			errors.As(err, &registrationErr):
			status = fiber.StatusBadGateway
		case errors.Is(err, doccheck.ErrEmptyInput),
			errors.Is(err, doccheck.ErrMissingWorksheet),
			errors.Is(err, doccheck.ErrNotADocument),
			errors.Is(err, doccheck.ErrTruncated),
			errors.Is(err, doccheck.ErrUnreadable):
			status = fiber.StatusUnprocessableEntity
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
