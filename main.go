package main

import (
	"errors"
	"log"

	"github.com/fenilmodi00/ipo-tracker/config"
	"github.com/fenilmodi00/ipo-tracker/database"
	"github.com/fenilmodi00/ipo-tracker/handlers"
	"github.com/fenilmodi00/ipo-tracker/services"
	"github.com/fenilmodi00/ipo-tracker/uploads"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	cfg.ConfigureLogging()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Initialize services with the shared database handle
	userService := services.NewUserService(db)
	companyService := services.NewCompanyService(db)
	ipoService := services.NewIPOService(db)
	documentService := services.NewDocumentService(db)

	uploadManager := uploads.NewManager(cfg.UploadDir)
	sessionStore := session.New(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessionStore)
	companyHandler := handlers.NewCompanyHandler(companyService, uploadManager)
	ipoHandler := handlers.NewIPOHandler(ipoService)
	documentHandler := handlers.NewDocumentHandler(documentService, uploadManager)

	// Setup Fiber
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowCredentials: true,
	}))

	// Uploaded files are served back under /uploads
	app.Static("/uploads", cfg.UploadDir)

	// API index
	app.Get("/", index)

	// Routes
	api := app.Group("/api")

	// Auth routes
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/user", authHandler.CurrentUser)

	// Public routes
	api.Get("/ipos", ipoHandler.GetIPOs)
	api.Get("/ipos/:ipoId/documents", documentHandler.GetIPODocuments)
	api.Get("/ipos/:id", ipoHandler.GetIPOByID)
	api.Get("/companies", companyHandler.GetCompanies)
	api.Get("/companies/:id", companyHandler.GetCompanyByID)

	// Admin routes
	admin := api.Group("/admin", authHandler.RequireAuth)
	admin.Post("/companies", companyHandler.CreateCompany)
	admin.Put("/companies/:id", companyHandler.UpdateCompany)
	admin.Delete("/companies/:id", companyHandler.DeleteCompany)
	admin.Post("/ipos", ipoHandler.CreateIPO)
	admin.Put("/ipos/:id", ipoHandler.UpdateIPO)
	admin.Delete("/ipos/:id", ipoHandler.DeleteIPO)
	admin.Post("/ipos/:ipoId/documents", documentHandler.UploadDocuments)
	admin.Put("/documents/:id", documentHandler.UpdateDocument)
	admin.Delete("/documents/:id", documentHandler.DeleteDocument)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// errorHandler is the process-wide handler for errors no route translated
// itself. Unexpected failures are logged in full and answered with a generic
// message so no internal detail leaks to the client.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   fiberErr.Message,
		})
	}

	logrus.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).WithError(err).Error("Unhandled request error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Internal Server Error",
	})
}

func index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "IPO Tracker API",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"authentication": fiber.Map{
				"POST /api/register": "Register a new user",
				"POST /api/login":    "Login user",
				"POST /api/logout":   "Logout user",
				"GET /api/user":      "Get current user",
			},
			"public": fiber.Map{
				"GET /api/companies":             "Get all companies",
				"GET /api/companies/:id":         "Get company by ID with IPOs",
				"GET /api/ipos":                  "Get all IPOs (query param: ?status=Upcoming)",
				"GET /api/ipos/:id":              "Get IPO by ID",
				"GET /api/ipos/:ipoId/documents": "Get documents for IPO",
			},
			"admin": fiber.Map{
				"POST /api/admin/companies":             "Create company (with logo upload)",
				"PUT /api/admin/companies/:id":          "Update company",
				"DELETE /api/admin/companies/:id":       "Delete company",
				"POST /api/admin/ipos":                  "Create IPO",
				"PUT /api/admin/ipos/:id":               "Update IPO",
				"DELETE /api/admin/ipos/:id":            "Delete IPO",
				"POST /api/admin/ipos/:ipoId/documents": "Upload IPO documents",
				"PUT /api/admin/documents/:id":          "Update document",
				"DELETE /api/admin/documents/:id":       "Delete document",
			},
		},
	})
}
