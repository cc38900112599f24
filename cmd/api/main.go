package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-stock-opname/internal/handler"
	"go-stock-opname/internal/middleware"
	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository"
	"go-stock-opname/internal/service"
	"go-stock-opname/internal/ws"
	"go-stock-opname/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(&model.Product{}, &model.StockOpnameSession{}, &model.StockOpnameDetail{}, &model.User{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	detailRepo := repository.NewDetailRepo(db)
	userRepo := repository.NewUserRepo(db)

	catalogService := service.NewCatalogService(productRepo, sessionRepo, wsHub)
	sessionService := service.NewSessionService(sessionRepo, wsHub)
	opnameService := service.NewOpnameService(sessionRepo, productRepo, detailRepo, wsHub)
	reportService := service.NewReportService(sessionRepo, detailRepo)
	importService := service.NewImportService(db, productRepo)
	exportService := service.NewExportService(productRepo, sessionRepo, detailRepo)
	authService := service.NewAuthService(userRepo)

	// 5. Seed default admin user
	authService.SeedAdmin()

	catalogHandler := handler.NewCatalogHandler(catalogService)
	sessionHandler := handler.NewSessionHandler(sessionService, opnameService, reportService)
	ioHandler := handler.NewImportExportHandler(importService, exportService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Stock Opname Backend v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Product Routes
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Get("/products/search", catalogHandler.SearchProducts)
	protected.Delete("/products/delete-all", catalogHandler.DeleteAllProducts)

	// Session Routes
	protected.Get("/sessions", sessionHandler.GetSessions)
	protected.Post("/sessions", sessionHandler.StartSession)
	protected.Get("/sessions/:id", sessionHandler.GetSession)
	protected.Put("/sessions/:id/complete", sessionHandler.CompleteSession)
	protected.Delete("/sessions/:id", sessionHandler.DeleteSession)

	// Detail & Report Routes
	protected.Get("/sessions/:id/details", sessionHandler.GetSessionDetails)
	protected.Post("/sessions/:id/details", sessionHandler.AddSessionDetail)
	protected.Get("/sessions/:id/report", sessionHandler.GetSessionReport)

	// Import/Export Routes
	protected.Post("/import/products", ioHandler.ImportProducts)
	protected.Get("/export/products", ioHandler.ExportProductsCSV)
	protected.Get("/export/products/excel", ioHandler.ExportProductsExcel)
	protected.Get("/sessions/:id/export", ioHandler.ExportSessionCSV)
	protected.Get("/export/stock-opname/:id/excel", ioHandler.ExportSessionExcel)
	protected.Get("/template/products", ioHandler.DownloadProductTemplate)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
