package delivery

import (
	"assistant/config"
	"assistant/domain"
	"assistant/middleware"

	"github.com/gofiber/fiber/v2"
)

type userHandler struct {
	uuc domain.UserUseCase
}

func NewUserDelivery(app *fiber.App, uc domain.UserUseCase) {
	handler := &userHandler{
		uuc: uc,
	}

	route := app.Group("/user")
	route.Get("/", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliveryGetAllUsers)
	route.Post("/", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliveryCreateUser)
	route.Get("/phone/:phone", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliveryFindUserByPhone)
	route.Put("/:id", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliveryUpdateUser)
	route.Delete("/:id", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleAdmin), handler.deliveryDeleteUser)
}

func (uh *userHandler) deliveryGetAllUsers(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	users, err := uh.uuc.GetAllUsers(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "GetAllUsers")
		return failResponse(c, status, "Failed to retrieve users", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "GetAllUsers")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Users retrieved successfully",
		"data":    users,
	})
}

func (uh *userHandler) deliveryCreateUser(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var payload domain.User
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "CreateUser")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	created, err := uh.uuc.CreateUser(c.Context(), &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "CreateUser")
		return failResponse(c, status, "Failed to create user", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusCreated, "CreateUser")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"data":    created,
	})
}

func (uh *userHandler) deliveryFindUserByPhone(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	phone := c.Params("phone")

	user, err := uh.uuc.FindUserByPhone(c.Context(), phone)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "FindUserByPhone")
		return failResponse(c, status, "Failed to retrieve user", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "FindUserByPhone")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User retrieved successfully",
		"data":    user,
	})
}

func (uh *userHandler) deliveryUpdateUser(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	var payload domain.UserUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Name, fiber.StatusBadRequest, "UpdateUser")
		return failResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updated, err := uh.uuc.UpdateUser(c.Context(), id, &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "UpdateUser")
		return failResponse(c, status, "Failed to update user", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "UpdateUser")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"data":    updated,
	})
}

func (uh *userHandler) deliveryDeleteUser(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	id := c.Params("id")

	if err := uh.uuc.DeleteUser(c.Context(), id); err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Name, status, "DeleteUser")
		return failResponse(c, status, "Failed to delete user", err)
	}

	config.PrintLogInfo(&userToken.Name, fiber.StatusOK, "DeleteUser")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User deactivated successfully",
		"data":    nil,
	})
}
