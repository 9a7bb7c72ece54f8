package delivery

import (
	"assistant/config"
	"assistant/domain"
	"assistant/middleware"

	"github.com/gofiber/fiber/v2"
)

type studentHandler struct {
	suc domain.StudentUseCase
}

func NewStudentDelivery(app *fiber.App, uc domain.StudentUseCase) {
	handler := &studentHandler{
		suc: uc,
	}

	route := app.Group("/school")
	route.Get("/students", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.deliveryGetAllStudents)
	route.Get("/students/:id", middleware.AuthRequired(), handler.deliveryGetStudent)
	route.Post("/students", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliveryCreateStudent)
}

func (sh *studentHandler) deliveryGetAllStudents(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	students, err := sh.suc.GetAllStudents(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetAllStudents")
		return failResponse(c, status, "Failed to retrieve students", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetAllStudents")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Students retrieved successfully",
		"data":    students,
	})
}

func (sh *studentHandler) deliveryGetStudent(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	student, err := sh.suc.GetStudent(c.Context(), id)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetStudent")
		return failResponse(c, status, "Failed to retrieve student", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetStudent")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Student retrieved successfully",
		"data":    student,
	})
}

func (sh *studentHandler) deliveryCreateStudent(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var payload domain.Student
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "CreateStudent")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	created, err := sh.suc.CreateStudent(c.Context(), &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "CreateStudent")
		return failResponse(c, status, "Failed to create student", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusCreated, "CreateStudent")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Student created successfully",
		"data":    created,
	})
}
