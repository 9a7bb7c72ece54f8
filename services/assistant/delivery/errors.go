package delivery

import (
	"errors"

	"assistant/domain"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps domain error kinds onto HTTP status codes. Anything
// unrecognized is treated as an internal failure.
func statusForError(err error) int {
	var notFound *domain.NotFoundError
	var invalidTransition *domain.InvalidTransitionError
	var outOfTerm *domain.OutOfTermError
	var approvalRequired *domain.ApprovalRequiredError
	var noProfessional *domain.NoProfessionalAvailableError

	switch {
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &invalidTransition):
		return fiber.StatusConflict
	case errors.As(err, &approvalRequired):
		return fiber.StatusConflict
	case errors.As(err, &noProfessional):
		return fiber.StatusConflict
	case errors.As(err, &outOfTerm):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func failResponse(c *fiber.Ctx, status int, message string, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   err.Error(),
		"data":    nil,
	})
}
