package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	pproduct "stockroom/internal/platform/product"
	psales "stockroom/internal/platform/sales"
)

const lowStockThreshold = 10

func GetDashboard(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	productService := pproduct.NewService(db)
	salesService := psales.NewService(db)

	totalProducts, err := productService.CountAll()
	if err != nil {
		log.Errorf("dashboard query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	totalStock, err := productService.TotalStock()
	if err != nil {
		log.Errorf("dashboard query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	lowStockCount, err := productService.LowStockCount(lowStockThreshold)
	if err != nil {
		log.Errorf("dashboard query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	totalSales, err := salesService.TotalAmount()
	if err != nil {
		log.Errorf("dashboard query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	salesData, err := salesService.DailyTotals(7)
	if err != nil {
		log.Errorf("dashboard query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"total_products":  totalProducts,
		"total_stock":     totalStock,
		"low_stock_count": lowStockCount,
		"total_sales":     totalSales,
		"sales_data":      salesData,
	})
}
