package delivery

import (
	"assistant/config"
	"assistant/domain"
	"assistant/middleware"

	"github.com/gofiber/fiber/v2"
)

type feeHandler struct {
	fuc domain.FeeUseCase
}

func NewFeeDelivery(app *fiber.App, uc domain.FeeUseCase) {
	handler := &feeHandler{
		fuc: uc,
	}

	route := app.Group("/school")
	route.Get("/fees/:studentId", middleware.AuthRequired(), handler.deliveryGetFees)
	route.Post("/fees", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliveryCreateFee)
	route.Post("/fees/:id/payment", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliveryRecordPayment)
	route.Post("/fees/:id/waive", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliveryWaiveFee)
	route.Post("/fees/:id/reminder", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliverySendReminder)
	route.Post("/fees/reminders", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliverySendDueReminders)
}

type waiveFeeRequest struct {
	Reason string `json:"reason"`
}

func (fh *feeHandler) deliveryGetFees(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	studentID := c.Params("studentId")

	fees, err := fh.fuc.GetFees(c.Context(), studentID)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetFees")
		return failResponse(c, status, "Failed to retrieve fees", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetFees")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Fees retrieved successfully",
		"data":    fees,
	})
}

func (fh *feeHandler) deliveryCreateFee(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var payload domain.FeeRecord
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "CreateFee")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	created, err := fh.fuc.CreateFee(c.Context(), &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "CreateFee")
		return failResponse(c, status, "Failed to create fee", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusCreated, "CreateFee")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Fee created successfully",
		"data":    created,
	})
}

func (fh *feeHandler) deliveryRecordPayment(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	var payload domain.FeePaymentPayload
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "RecordPayment")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	fee, err := fh.fuc.RecordPayment(c.Context(), id, &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "RecordPayment")
		return failResponse(c, status, "Failed to record payment", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "RecordPayment")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Payment recorded successfully",
		"data":    fee,
	})
}

func (fh *feeHandler) deliveryWaiveFee(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	var payload waiveFeeRequest
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "WaiveFee")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	fee, err := fh.fuc.WaiveFee(c.Context(), id, payload.Reason)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "WaiveFee")
		return failResponse(c, status, "Failed to waive fee", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "WaiveFee")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Fee waived successfully",
		"data":    fee,
	})
}

func (fh *feeHandler) deliverySendReminder(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	reminder, err := fh.fuc.SendReminder(c.Context(), id)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "SendReminder")
		return failResponse(c, status, "Failed to send reminder", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "SendReminder")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Reminder sent successfully",
		"data":    reminder,
	})
}

func (fh *feeHandler) deliverySendDueReminders(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	sent, err := fh.fuc.SendDueReminders(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "SendDueReminders")
		return failResponse(c, status, "Failed to send due reminders", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "SendDueReminders")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Due reminders sent",
		"data":    fiber.Map{"sent": sent},
	})
}
