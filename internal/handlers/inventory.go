package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"stockroom/internal/config"
	pproduct "stockroom/internal/platform/product"
)

type stockMovementInput struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

func InboundInventory(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	var input stockMovementInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	if err := pproduct.NewService(db).Inbound(input.ProductID, input.Quantity); err != nil {
		if errors.Is(err, pproduct.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		log.Errorf("inbound movement failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func OutboundInventory(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	var input stockMovementInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	if err := pproduct.NewService(db).Outbound(input.ProductID, input.Quantity); err != nil {
		switch {
		case errors.Is(err, pproduct.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		case errors.Is(err, pproduct.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Insufficient stock"})
		default:
			log.Errorf("outbound movement failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
