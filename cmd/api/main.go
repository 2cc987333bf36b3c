package main

import (
	"log"
	"time"

	config "github.com/wanjiru84/pro_marketplace/configs"
	"github.com/wanjiru84/pro_marketplace/database"
	"github.com/wanjiru84/pro_marketplace/geo"
	"github.com/wanjiru84/pro_marketplace/handlers"
	"github.com/wanjiru84/pro_marketplace/jobs"
	"github.com/wanjiru84/pro_marketplace/metrics"
	"github.com/wanjiru84/pro_marketplace/notifications"
	"github.com/wanjiru84/pro_marketplace/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	var hooks metrics.Hooks = metrics.NoopHooks{}
	if config.Config("METRICS_BASE_URL") != "" {
		hooks = metrics.NewHTTPHooks()
	}
	handlers.Init(database.DB, geo.NewHTTPGeocoder(), hooks)

	c := cron.New()
	c.AddFunc("0 3 * * *", jobs.AuditProfessionalLocations)
	go c.Start()
	log.Println("✅ Cron job for location audit scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Pro Marketplace",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Pro Marketplace API",
		})
	})

	routes.AuthRoutes(app)
	routes.PublicRoutes(app)
	routes.ProfessionalRoutes(app)
	routes.BookingRoutes(app)
	routes.PaymentRoutes(app)
	routes.AdminRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
