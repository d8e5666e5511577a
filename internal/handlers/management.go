package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"stockroom/internal/config"
	"stockroom/internal/database"
	puser "stockroom/internal/platform/user"
	"stockroom/pkg/passwd"
)

func CreateUser(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	type UserInput struct {
		Username string `json:"username" validate:"required,max=100"`
		Password string `json:"password" validate:"required,min=8,max=100"`
		Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
	}

	var input UserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if input.Role == "" {
		input.Role = database.RoleStaff
	}

	user, err := puser.NewService(db).Create(input.Username, input.Password, input.Role)
	if err != nil {
		if errors.Is(err, puser.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Username already taken"})
		}
		log.Errorf("user creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(user)
}

func ResetUserPassword(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	userID, err := c.ParamsInt("user_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	type ResetInput struct {
		Password string `json:"password" validate:"required,min=8,max=100"`
	}

	var input ResetInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	userService := puser.NewService(db)

	user, err := userService.GetByID(userID)
	if err != nil {
		if errors.Is(err, puser.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		log.Errorf("user lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	if err := userService.UpdatePasswordHash(user.ID, passwd.Hash(input.Password)); err != nil {
		log.Errorf("password update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	if err := userService.PurgeResetKeys(user.ID); err != nil {
		log.Errorf("reset key purge failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(user)
}
