package delivery

import (
	"assistant/config"
	"assistant/domain"
	"assistant/middleware"

	"github.com/gofiber/fiber/v2"
)

type aiRoleHandler struct {
	auc domain.AIRoleUseCase
}

func NewAIRoleDelivery(app *fiber.App, uc domain.AIRoleUseCase) {
	handler := &aiRoleHandler{
		auc: uc,
	}

	route := app.Group("/ai", middleware.AuthRequired())
	route.Get("/roles", handler.deliveryGetRoles)
	route.Post("/tasks", handler.deliveryCreateTask)
	route.Post("/tasks/:id/decision", handler.deliveryMakeDecision)
}

func (ah *aiRoleHandler) deliveryGetRoles(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	roles, err := ah.auc.GetAIRoles(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetAIRoles")
		return failResponse(c, status, "Failed to retrieve roles", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetAIRoles")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Roles retrieved successfully",
		"data":    roles,
	})
}

func (ah *aiRoleHandler) deliveryCreateTask(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var payload domain.AITask
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "CreateTask")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	task, err := ah.auc.CreateTask(c.Context(), &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "CreateTask")
		return failResponse(c, status, "Failed to create task", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusCreated, "CreateTask")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Task created successfully",
		"data":    task,
	})
}

func (ah *aiRoleHandler) deliveryMakeDecision(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	taskID := c.Params("id")

	var payload domain.DecisionContext
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "MakeDecision")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	decision, err := ah.auc.MakeDecision(c.Context(), taskID, &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "MakeDecision")
		return failResponse(c, status, "Failed to resolve task", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "MakeDecision")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Decision recorded successfully",
		"data":    decision,
	})
}
