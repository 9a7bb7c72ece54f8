package delivery

import (
	"time"

	"assistant/config"
	"assistant/domain"
	"assistant/middleware"

	"github.com/gofiber/fiber/v2"
)

type broadcastHandler struct {
	buc domain.BroadcastUseCase
}

func NewBroadcastDelivery(app *fiber.App, uc domain.BroadcastUseCase) {
	handler := &broadcastHandler{
		buc: uc,
	}

	route := app.Group("/broadcast", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher))
	route.Get("/templates", handler.deliveryGetTemplates)
	route.Post("/templates", handler.deliveryCreateTemplate)
	route.Put("/templates/:id/approve", middleware.RoleRequired(domain.RoleAdmin), handler.deliveryApproveTemplate)
	route.Get("/campaigns", handler.deliveryGetCampaigns)
	route.Post("/campaigns", handler.deliveryCreateCampaign)
	route.Put("/campaigns/:id", handler.deliveryUpdateCampaign)
	route.Post("/campaigns/:id/schedule", handler.deliveryScheduleCampaign)
	route.Post("/campaigns/:id/send", handler.deliverySendCampaign)
	route.Get("/campaigns/:id/analytics", handler.deliveryCampaignAnalytics)
}

func (bh *broadcastHandler) deliveryGetTemplates(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	templates, err := bh.buc.GetTemplates(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetTemplates")
		return failResponse(c, status, "Failed to retrieve templates", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetTemplates")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Templates retrieved successfully",
		"data":    templates,
	})
}

func (bh *broadcastHandler) deliveryCreateTemplate(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var payload domain.BroadcastTemplate
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "CreateTemplate")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	created, err := bh.buc.CreateTemplate(c.Context(), &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "CreateTemplate")
		return failResponse(c, status, "Failed to create template", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusCreated, "CreateTemplate")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Template created successfully",
		"data":    created,
	})
}

func (bh *broadcastHandler) deliveryApproveTemplate(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	template, err := bh.buc.ApproveTemplate(c.Context(), id)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "ApproveTemplate")
		return failResponse(c, status, "Failed to approve template", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "ApproveTemplate")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Template approved successfully",
		"data":    template,
	})
}

func (bh *broadcastHandler) deliveryGetCampaigns(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	campaigns, err := bh.buc.GetCampaigns(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetCampaigns")
		return failResponse(c, status, "Failed to retrieve campaigns", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetCampaigns")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Campaigns retrieved successfully",
		"data":    campaigns,
	})
}

func (bh *broadcastHandler) deliveryCreateCampaign(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var payload domain.BroadcastCampaign
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "CreateCampaign")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	payload.CreatedBy = userToken.UserID

	created, err := bh.buc.CreateCampaign(c.Context(), &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "CreateCampaign")
		return failResponse(c, status, "Failed to create campaign", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusCreated, "CreateCampaign")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Campaign created successfully",
		"data":    created,
	})
}

func (bh *broadcastHandler) deliveryUpdateCampaign(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	var payload domain.CampaignUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "UpdateCampaign")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updated, err := bh.buc.UpdateCampaign(c.Context(), id, &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "UpdateCampaign")
		return failResponse(c, status, "Failed to update campaign", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "UpdateCampaign")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Campaign updated successfully",
		"data":    updated,
	})
}

type scheduleCampaignRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

func (bh *broadcastHandler) deliveryScheduleCampaign(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	var payload scheduleCampaignRequest
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "ScheduleCampaign")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	campaign, err := bh.buc.ScheduleCampaign(c.Context(), id, payload.ScheduledAt)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "ScheduleCampaign")
		return failResponse(c, status, "Failed to schedule campaign", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "ScheduleCampaign")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Campaign scheduled successfully",
		"data":    campaign,
	})
}

func (bh *broadcastHandler) deliverySendCampaign(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	if err := bh.buc.SendCampaign(c.Context(), id); err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "SendCampaign")
		return failResponse(c, status, "Failed to start campaign", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusAccepted, "SendCampaign")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "Campaign dispatch started",
		"data":    nil,
	})
}

func (bh *broadcastHandler) deliveryCampaignAnalytics(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	analytics, err := bh.buc.GetCampaignAnalytics(c.Context(), id)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetCampaignAnalytics")
		return failResponse(c, status, "Failed to retrieve analytics", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetCampaignAnalytics")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Analytics retrieved successfully",
		"data":    analytics,
	})
}
