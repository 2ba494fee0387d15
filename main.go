package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/controllers"
	"github.com/sultan-bakery/sultan-orders-api/middleware"
	"github.com/sultan-bakery/sultan-orders-api/models"
	"github.com/sultan-bakery/sultan-orders-api/services"
)

func main() {
	log.Println("Starting Sultan Orders API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	err = db.AutoMigrate(
		&models.Order{},
		&models.User{},
		&models.Facility{},
		&models.Role{},
		&models.AlertRule{},
		&models.Transaction{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed the default role set on first boot
	if err := seedDefaultRoles(); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	// Image storage is optional; without a bucket, uploads are disabled
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, image uploads disabled")
	}

	// Notification store and alert engine
	store := services.InitNotificationStore()
	engine := services.NewAlertEngine(db, store, time.Duration(cfg.AlertIntervalSeconds)*time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine.Start(ctx)
	defer engine.Stop()
	log.Printf("Alert engine running, evaluating every %ds", cfg.AlertIntervalSeconds)

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())
	registerRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server is running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal, then stop the server and the alert engine
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

// registerRoutes wires all API v1 endpoints
func registerRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Public endpoints
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)
		v1.POST("/auth/login", controllers.Login)

		// Everything else requires a session
		authed := v1.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.POST("/auth/logout", controllers.Logout)

			// Orders
			authed.GET("/orders", controllers.ListOrders)
			authed.GET("/orders/:id", controllers.GetOrder)
			authed.POST("/orders", middleware.RequirePermission(models.PermCreateOrder), controllers.CreateOrder)
			authed.PUT("/orders/:id", middleware.RequirePermission(models.PermEditOrder), controllers.UpdateOrder)
			authed.DELETE("/orders/:id", middleware.RequirePermission(models.PermManageSettings), controllers.DeleteOrder)
			authed.POST("/orders/:id/advance", controllers.AdvanceOrder)

			// Users and roles
			authed.GET("/users", middleware.RequirePermission(models.PermManageUsers), controllers.ListUsers)
			authed.POST("/users", middleware.RequirePermission(models.PermManageUsers), controllers.CreateUser)
			authed.PUT("/users/:id", middleware.RequirePermission(models.PermManageUsers), controllers.UpdateUser)
			authed.DELETE("/users/:id", middleware.RequirePermission(models.PermManageUsers), controllers.DeleteUser)

			authed.GET("/roles", middleware.RequirePermission(models.PermManageUsers), controllers.ListRoles)
			authed.POST("/roles", middleware.RequirePermission(models.PermManageUsers), controllers.CreateRole)
			authed.PUT("/roles/:id", middleware.RequirePermission(models.PermManageUsers), controllers.UpdateRole)
			authed.DELETE("/roles/:id", middleware.RequirePermission(models.PermManageUsers), controllers.DeleteRole)

			// Facilities
			authed.GET("/facilities", controllers.ListFacilities)
			authed.POST("/facilities", middleware.RequirePermission(models.PermManageSettings), controllers.CreateFacility)
			authed.DELETE("/facilities/:id", middleware.RequirePermission(models.PermManageSettings), controllers.DeleteFacility)

			// Alert rules and notifications
			authed.GET("/alert-rules", middleware.RequirePermission(models.PermManageSettings), controllers.ListAlertRules)
			authed.POST("/alert-rules", middleware.RequirePermission(models.PermManageSettings), controllers.CreateAlertRule)
			authed.PUT("/alert-rules/:id", middleware.RequirePermission(models.PermManageSettings), controllers.UpdateAlertRule)
			authed.DELETE("/alert-rules/:id", middleware.RequirePermission(models.PermManageSettings), controllers.DeleteAlertRule)

			authed.GET("/notifications", controllers.ListMyNotifications)
			authed.PUT("/notifications/:id/read", controllers.MarkNotificationRead)

			// Finance
			authed.GET("/finance/transactions", controllers.ListTransactions)
			authed.POST("/finance/transactions", controllers.CreateTransaction)
			authed.GET("/finance/stats", controllers.GetFinanceStats)

			// Backup and uploads
			authed.GET("/backup", middleware.RequirePermission(models.PermManageSettings), controllers.ExportBackup)
			authed.POST("/backup", middleware.RequirePermission(models.PermManageSettings), controllers.ImportBackup)
			authed.POST("/uploads", middleware.RequirePermission(models.PermCreateOrder), controllers.UploadOrderImage)
		}
	}
}

// seedDefaultRoles inserts the default role set when the roles table is empty
func seedDefaultRoles() error {
	db := config.GetDB()

	var count int64
	if err := db.Model(&models.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roles := models.DefaultRoles()
	if err := db.Create(&roles).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d default roles", len(roles))
	return nil
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sultan Orders API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
