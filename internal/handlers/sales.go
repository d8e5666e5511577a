package handlers

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"stockroom/internal/config"
	pproduct "stockroom/internal/platform/product"
	psales "stockroom/internal/platform/sales"
	"stockroom/internal/storage"
)

const salesHistoryLimit = 50

func RecordSale(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	type SaleInput struct {
		ProductID int `json:"product_id" validate:"required,gt=0"`
		Quantity  int `json:"quantity" validate:"required,gt=0"`
		Price     int `json:"price" validate:"required,gt=0"`
	}

	var input SaleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	sale, err := psales.NewService(db).Record(input.ProductID, input.Quantity, input.Price)
	if err != nil {
		switch {
		case errors.Is(err, pproduct.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		case errors.Is(err, pproduct.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Insufficient stock"})
		default:
			log.Errorf("sale recording failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "sale": sale})
}

func GetSalesAnalysis(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	salesService := psales.NewService(db)

	chartData, err := salesService.TotalsByProduct()
	if err != nil {
		log.Errorf("sales totals failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	history, err := salesService.History(salesHistoryLimit)
	if err != nil {
		log.Errorf("sales history failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"chart_data":    chartData,
		"sales_history": history,
	})
}

func ExportSales(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)

	history, err := psales.NewService(db).History(salesHistoryLimit)
	if err != nil {
		log.Errorf("sales history failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}

	var buf bytes.Buffer
	if err := psales.WriteCSV(&buf, history); err != nil {
		log.Errorf("sales export encoding failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}

	storageService := storage.NewStorageService(cfg.Storage())
	key := storageService.GenerateKeyName("sales-export")
	if err := storageService.Save(key, buf.Bytes()); err != nil {
		log.Errorf("sales export upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"success": true, "key": key})
}
