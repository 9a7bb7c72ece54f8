package delivery

import (
	"assistant/config"
	"assistant/domain"

	"github.com/gofiber/fiber/v2"
)

type authHandler struct {
	auc domain.AuthUseCase
}

func NewAuthDelivery(app *fiber.App, uc domain.AuthUseCase) {
	handler := &authHandler{
		auc: uc,
	}

	route := app.Group("/auth")
	route.Post("/login", handler.deliveryLogin)
}

func (ah *authHandler) deliveryLogin(c *fiber.Ctx) error {
	var payload domain.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(nil, fiber.StatusBadRequest, "Login")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	resp, err := ah.auc.Login(c.Context(), &payload)
	if err != nil {
		config.PrintLogInfo(&payload.Phone, fiber.StatusUnauthorized, "Login")
		return failResponse(c, fiber.StatusUnauthorized, "Login failed", err)
	}

	config.PrintLogInfo(&payload.Phone, fiber.StatusOK, "Login")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    resp,
	})
}
