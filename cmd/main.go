package main

import (
	"context"
	"fmt"
	"log"

	"restomart/internal/caching"
	"restomart/internal/config"
	"restomart/internal/handlers"
	"restomart/internal/jobs"
	"restomart/internal/jobs/background"
	"restomart/internal/repositories"
	"restomart/internal/services"
	"restomart/pkg/database"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	mediaSvc, err := services.NewMinioMediaService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	if err := mediaSvc.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARN: could not ensure image bucket exists: %v", err)
	}

	// Repositories
	inventoryRepo := repositories.NewInventoryRepo(pool)
	menuRepo := repositories.NewMenuRepo(pool)
	tableRepo := repositories.NewTableRepo(pool)
	reservationRepo := repositories.NewReservationRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	reportRepo := repositories.NewReportRepo(pool)

	// Services
	inventorySvc := services.NewInventoryService(pool, inventoryRepo)
	menuSvc := services.NewMenuService(pool, menuRepo)
	tableSvc := services.NewTableService(pool, tableRepo)
	reservationSvc := services.NewReservationService(pool, reservationRepo)
	orderSvc := services.NewOrderService(pool, orderRepo, cfg.DeductStockOnOrder)
	reportSvc := services.NewReportService(reportRepo, inventoryRepo, cacheSvc)

	// Background jobs
	alertSvc := jobs.NewInventoryAlertService(inventoryRepo)
	reminderSvc := jobs.NewReservationReminderService(reservationRepo)
	scheduler := background.NewJobScheduler(alertSvc, reminderSvc, reportSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Handlers
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc)
	menuHandlers := handlers.NewMenuHandlers(menuSvc, mediaSvc)
	tableHandlers := handlers.NewTableHandlers(tableSvc)
	reservationHandlers := handlers.NewReservationHandlers(reservationSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, scheduler, version)

	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)

	api := e.Group("/api")

	api.GET("/menu", menuHandlers.ListItems)
	api.POST("/menu", menuHandlers.CreateItem)
	api.GET("/menu/categories", menuHandlers.Categories)
	api.GET("/menu/search", menuHandlers.Search)
	api.POST("/menu/availability", menuHandlers.CheckAvailabilityBatch)
	api.GET("/menu/stats/ingredients", menuHandlers.IngredientStats)
	api.GET("/menu/:id", menuHandlers.GetItem)
	api.PUT("/menu/:id", menuHandlers.UpdateItem)
	api.DELETE("/menu/:id", menuHandlers.DeleteItem)
	api.GET("/menu/:id/availability", menuHandlers.CheckAvailability)
	api.POST("/menu/:id/image", menuHandlers.UploadImage)

	api.GET("/inventory", inventoryHandlers.ListItems)
	api.POST("/inventory", inventoryHandlers.CreateItem)
	api.GET("/inventory/alerts/low-stock", inventoryHandlers.LowStock)
	api.GET("/inventory/stats/categories", inventoryHandlers.CategoryStats)
	api.GET("/inventory/stats/overview", inventoryHandlers.Stats)
	api.GET("/inventory/:id", inventoryHandlers.GetItem)
	api.PUT("/inventory/:id", inventoryHandlers.UpdateItem)
	api.DELETE("/inventory/:id", inventoryHandlers.DeleteItem)
	api.PATCH("/inventory/:id/stock", inventoryHandlers.AdjustStock)
	api.GET("/inventory/:id/check", inventoryHandlers.CheckStock)

	api.GET("/tables", tableHandlers.ListTables)
	api.POST("/tables", tableHandlers.CreateTable)
	api.GET("/tables/available", tableHandlers.FindAvailable)
	api.GET("/tables/:id", tableHandlers.GetTable)
	api.PUT("/tables/:id", tableHandlers.UpdateTable)
	api.PATCH("/tables/:id/status", tableHandlers.UpdateStatus)
	api.DELETE("/tables/:id", tableHandlers.DeleteTable)

	api.GET("/reservations", reservationHandlers.ListReservations)
	api.POST("/reservations", reservationHandlers.CreateReservation)
	api.GET("/reservations/upcoming", reservationHandlers.Upcoming)
	api.GET("/reservations/:id", reservationHandlers.GetReservation)
	api.PUT("/reservations/:id", reservationHandlers.UpdateReservation)
	api.PATCH("/reservations/:id/status", reservationHandlers.UpdateStatus)
	api.DELETE("/reservations/:id", reservationHandlers.DeleteReservation)

	api.GET("/orders", orderHandlers.ListOrders)
	api.POST("/orders", orderHandlers.CreateOrder)
	api.GET("/orders/stats/summary", orderHandlers.Stats)
	api.GET("/orders/:id", orderHandlers.GetOrder)
	api.PATCH("/orders/:id/status", orderHandlers.UpdateStatus)

	api.GET("/reports/daily-sales", reportHandlers.DailySales)
	api.GET("/reports/inventory", reportHandlers.InventoryReport)
	api.GET("/reports/dashboard", reportHandlers.DashboardStats)

	log.Printf("Restomart server v%s starting on port %d", version, cfg.Port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
