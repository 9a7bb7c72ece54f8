package delivery

import (
	"time"

	"assistant/config"
	"assistant/domain"
	"assistant/middleware"

	"github.com/gofiber/fiber/v2"
)

type attendanceHandler struct {
	auc domain.AttendanceUseCase
}

func NewAttendanceDelivery(app *fiber.App, uc domain.AttendanceUseCase) {
	handler := &attendanceHandler{
		auc: uc,
	}

	route := app.Group("/school")
	route.Post("/attendance", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.deliveryMarkAttendance)
	route.Get("/attendance/:studentId", middleware.AuthRequired(), handler.deliveryListAttendance)
	route.Get("/attendance/:id/audit", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.deliveryListAudit)
	route.Get("/attendance/:studentId/checkin-token", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.deliveryCheckInToken)
}

func (ah *attendanceHandler) deliveryMarkAttendance(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var payload domain.MarkAttendancePayload
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "MarkAttendance")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	record, err := ah.auc.MarkAttendance(c.Context(), &payload, userToken.UserID)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "MarkAttendance")
		return failResponse(c, status, "Failed to mark attendance", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "MarkAttendance")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Attendance recorded successfully",
		"data":    record,
	})
}

func (ah *attendanceHandler) deliveryListAttendance(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	studentID := c.Params("studentId")

	records, err := ah.auc.ListAttendance(c.Context(), studentID)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "ListAttendance")
		return failResponse(c, status, "Failed to retrieve attendance", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "ListAttendance")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Attendance retrieved successfully",
		"data":    records,
	})
}

func (ah *attendanceHandler) deliveryListAudit(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	attendanceID := c.Params("id")

	entries, err := ah.auc.ListAudit(c.Context(), attendanceID)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "ListAudit")
		return failResponse(c, status, "Failed to retrieve audit trail", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "ListAudit")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Audit trail retrieved successfully",
		"data":    entries,
	})
}

func (ah *attendanceHandler) deliveryCheckInToken(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	studentID := c.Params("studentId")

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "CheckInToken")
			return failResponse(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		}
		date = parsed
	}

	token, err := ah.auc.CheckInToken(c.Context(), studentID, date)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "CheckInToken")
		return failResponse(c, status, "Failed to generate check-in token", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "CheckInToken")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Check-in token generated successfully",
		"data":    fiber.Map{"qr_code": token},
	})
}
