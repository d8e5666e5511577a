package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"stockroom/internal/config"
	pproduct "stockroom/internal/platform/product"
)

func GetProducts(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	products, err := pproduct.NewService(db).List()
	if err != nil {
		log.Errorf("product list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(products)
}

func CreateProduct(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	type ProductInput struct {
		SKU      string `json:"sku" validate:"required,max=32"`
		Name     string `json:"name" validate:"required,max=200"`
		Price    int    `json:"price" validate:"required,gt=0"`
		Quantity int    `json:"quantity" validate:"gte=0"`
	}

	var input ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	product, err := pproduct.NewService(db).Create(input.SKU, input.Name, input.Price, input.Quantity)
	if err != nil {
		if errors.Is(err, pproduct.ErrSKUTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "SKU already exists"})
		}
		log.Errorf("product creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"success": true, "product": product})
}

func UpdateProduct(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	productID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	type ProductUpdateInput struct {
		Name  string `json:"name" validate:"required,max=200"`
		Price int    `json:"price" validate:"required,gt=0"`
	}

	var input ProductUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	product, err := pproduct.NewService(db).Update(productID, input.Name, input.Price)
	if err != nil {
		if errors.Is(err, pproduct.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		log.Errorf("product update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"success": true, "product": product})
}
