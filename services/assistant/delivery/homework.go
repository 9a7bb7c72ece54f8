package delivery

import (
	"assistant/config"
	"assistant/domain"
	"assistant/middleware"

	"github.com/gofiber/fiber/v2"
)

type homeworkHandler struct {
	huc domain.HomeworkUseCase
}

func NewHomeworkDelivery(app *fiber.App, uc domain.HomeworkUseCase) {
	handler := &homeworkHandler{
		huc: uc,
	}

	route := app.Group("/school")
	route.Get("/homework", middleware.AuthRequired(), handler.deliveryGetAllHomework)
	route.Get("/homework/:id", middleware.AuthRequired(), handler.deliveryGetHomework)
	route.Post("/homework", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.deliveryCreateHomework)
	route.Put("/homework/:id", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.deliveryUpdateHomework)
	route.Post("/homework/:id/submissions/:studentId", middleware.AuthRequired(), handler.deliveryUpdateSubmission)
	route.Post("/homework/:id/submissions/:studentId/grade", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.deliveryGradeSubmission)
}

type createHomeworkRequest struct {
	domain.HomeworkAssignment
	TargetStudents []string `json:"target_students"`
}

type submissionStatusRequest struct {
	Status domain.SubmissionStatus `json:"status"`
}

func (hh *homeworkHandler) deliveryGetAllHomework(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	assignments, err := hh.huc.GetAllHomework(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetAllHomework")
		return failResponse(c, status, "Failed to retrieve homework", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetAllHomework")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Homework retrieved successfully",
		"data":    assignments,
	})
}

func (hh *homeworkHandler) deliveryGetHomework(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	assignment, err := hh.huc.GetHomework(c.Context(), id)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetHomework")
		return failResponse(c, status, "Failed to retrieve homework", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetHomework")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Homework retrieved successfully",
		"data":    assignment,
	})
}

func (hh *homeworkHandler) deliveryCreateHomework(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var payload createHomeworkRequest
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "CreateHomework")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	created, err := hh.huc.CreateHomework(c.Context(), &payload.HomeworkAssignment, payload.TargetStudents)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "CreateHomework")
		return failResponse(c, status, "Failed to create homework", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusCreated, "CreateHomework")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Homework created successfully",
		"data":    created,
	})
}

func (hh *homeworkHandler) deliveryUpdateHomework(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	var payload domain.HomeworkUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "UpdateHomework")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updated, err := hh.huc.UpdateHomework(c.Context(), id, &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "UpdateHomework")
		return failResponse(c, status, "Failed to update homework", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "UpdateHomework")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Homework updated successfully",
		"data":    updated,
	})
}

func (hh *homeworkHandler) deliveryUpdateSubmission(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	assignmentID := c.Params("id")
	studentID := c.Params("studentId")

	var payload submissionStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "UpdateSubmission")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	submission, err := hh.huc.UpdateSubmissionStatus(c.Context(), assignmentID, studentID, payload.Status)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "UpdateSubmission")
		return failResponse(c, status, "Failed to update submission", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "UpdateSubmission")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Submission updated successfully",
		"data":    submission,
	})
}

func (hh *homeworkHandler) deliveryGradeSubmission(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	assignmentID := c.Params("id")
	studentID := c.Params("studentId")

	var payload domain.GradePayload
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "GradeSubmission")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	submission, err := hh.huc.GradeSubmission(c.Context(), assignmentID, studentID, &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GradeSubmission")
		return failResponse(c, status, "Failed to grade submission", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GradeSubmission")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Submission graded successfully",
		"data":    submission,
	})
}
