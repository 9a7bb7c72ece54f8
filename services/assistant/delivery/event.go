package delivery

import (
	"assistant/config"
	"assistant/domain"
	"assistant/middleware"

	"github.com/gofiber/fiber/v2"
)

type eventHandler struct {
	euc domain.EventUseCase
}

func NewEventDelivery(app *fiber.App, uc domain.EventUseCase) {
	handler := &eventHandler{
		euc: uc,
	}

	route := app.Group("/school")
	route.Get("/events", middleware.AuthRequired(), handler.deliveryGetEvents)
	route.Post("/events", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.deliveryCreateEvent)
	route.Post("/events/:id/rsvp", middleware.AuthRequired(), handler.deliveryRSVP)
}

type createEventRequest struct {
	domain.SchoolEvent
	Invitees []string `json:"invitees"`
}

type rsvpRequest struct {
	StudentID string            `json:"student_id"`
	Status    domain.RSVPStatus `json:"status"`
}

func (eh *eventHandler) deliveryGetEvents(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	events, err := eh.euc.GetSchoolEvents(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetSchoolEvents")
		return failResponse(c, status, "Failed to retrieve events", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetSchoolEvents")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Events retrieved successfully",
		"data":    events,
	})
}

func (eh *eventHandler) deliveryCreateEvent(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var payload createEventRequest
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "CreateEvent")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	created, err := eh.euc.CreateEvent(c.Context(), &payload.SchoolEvent, payload.Invitees)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "CreateEvent")
		return failResponse(c, status, "Failed to create event", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusCreated, "CreateEvent")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Event created successfully",
		"data":    created,
	})
}

func (eh *eventHandler) deliveryRSVP(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	eventID := c.Params("id")

	var payload rsvpRequest
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "RSVPEvent")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	participation, err := eh.euc.RSVPEvent(c.Context(), eventID, payload.StudentID, payload.Status)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "RSVPEvent")
		return failResponse(c, status, "Failed to record RSVP", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "RSVPEvent")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "RSVP recorded successfully",
		"data":    participation,
	})
}
