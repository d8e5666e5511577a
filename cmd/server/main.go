package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/handlers"
	"stockroom/internal/middleware"
	"stockroom/internal/platform/guard"
	puser "stockroom/internal/platform/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(db, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	loginGuard := guard.New(puser.NewService(db), guard.NewLedger(db), cfg.LoginAttemptLimit, cfg.LoginAttemptWindow)

	app := fiber.New()

	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(healthcheck.New())

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("db", db)
		c.Locals("guard", loginGuard)
		return c.Next()
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.Login)
	auth.Post("/logout", handlers.Logout)
	auth.Post("/change-password", middleware.AuthMiddleware, handlers.ChangePassword)
	auth.Post("/forgot-password", handlers.ForgotPassword)
	auth.Post("/reset-password", handlers.ResetPassword)

	user := api.Group("/user", middleware.AuthMiddleware)
	user.Get("/me", handlers.GetCurrentUser)

	api.Get("/dashboard", middleware.AuthMiddleware, handlers.GetDashboard)

	product := api.Group("/products", middleware.AuthMiddleware)
	product.Get("/", handlers.GetProducts)
	product.Post("/", handlers.CreateProduct)
	product.Put("/:id", handlers.UpdateProduct)

	inventory := api.Group("/inventory", middleware.AuthMiddleware)
	inventory.Post("/inbound", handlers.InboundInventory)
	inventory.Post("/outbound", handlers.OutboundInventory)

	sales := api.Group("/sales", middleware.AuthMiddleware)
	sales.Post("/", handlers.RecordSale)
	sales.Get("/analysis", handlers.GetSalesAnalysis)
	sales.Post("/export", middleware.AdminMiddleware, handlers.ExportSales)

	management := api.Group("/management", middleware.AuthMiddleware, middleware.AdminMiddleware)
	management.Post("/user", handlers.CreateUser)
	management.Post("/user/:user_id/reset-password", handlers.ResetUserPassword)

	diag := api.Group("/diag")
	diag.Get("/ip", handlers.GetIP)
	diag.Get("/headers", handlers.GetHeaders)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)))
}
