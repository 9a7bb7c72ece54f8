package delivery

import (
	"assistant/config"
	"assistant/domain"
	"assistant/middleware"

	"github.com/gofiber/fiber/v2"
)

type familyHandler struct {
	fuc domain.FamilyUseCase
}

func NewFamilyDelivery(app *fiber.App, uc domain.FamilyUseCase) {
	handler := &familyHandler{
		fuc: uc,
	}

	route := app.Group("/family", middleware.AuthRequired())
	route.Get("/members", handler.deliveryGetMembers)
	route.Get("/members/:id", handler.deliveryGetMember)
	route.Put("/goals/:id", handler.deliveryUpdateGoal)
	route.Put("/items/:id", handler.deliveryUpdateItem)
}

func (fh *familyHandler) deliveryGetMembers(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	members, err := fh.fuc.GetFamilyMembers(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetFamilyMembers")
		return failResponse(c, status, "Failed to retrieve family members", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetFamilyMembers")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Family members retrieved successfully",
		"data":    members,
	})
}

func (fh *familyHandler) deliveryGetMember(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	member, err := fh.fuc.GetFamilyMember(c.Context(), id)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetFamilyMember")
		return failResponse(c, status, "Failed to retrieve family member", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetFamilyMember")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Family member retrieved successfully",
		"data":    member,
	})
}

func (fh *familyHandler) deliveryUpdateGoal(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	var payload domain.GoalUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "UpdateGoal")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	goal, err := fh.fuc.UpdateGoal(c.Context(), id, &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "UpdateGoal")
		return failResponse(c, status, "Failed to update goal", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "UpdateGoal")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Goal updated successfully",
		"data":    goal,
	})
}

func (fh *familyHandler) deliveryUpdateItem(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	var payload domain.ItemUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "UpdateActionableItem")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	item, err := fh.fuc.UpdateActionableItem(c.Context(), id, &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "UpdateActionableItem")
		return failResponse(c, status, "Failed to update actionable item", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "UpdateActionableItem")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Actionable item updated successfully",
		"data":    item,
	})
}
