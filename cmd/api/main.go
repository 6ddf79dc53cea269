package main

import (
	"log"
	"os"

	_ "material-store/api/swagger" // swagger docs
	"material-store/internal/database"
	"material-store/internal/handler"
	"material-store/internal/middleware"
	"material-store/internal/repository"
	"material-store/internal/service"
	"material-store/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Material Store API
// @version         1.0
// @description     Role-based inventory request and approval API for the office materials store.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	distributionRepo := repository.NewDistributionRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo, auditRepo, txManager)
	materialService := service.NewMaterialService(materialRepo, auditRepo, txManager)
	ledgerService := service.NewLedgerService(purchaseRepo, distributionRepo, draftRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, materialRepo, auditRepo, txManager, wsHub)
	distributionService := service.NewDistributionService(distributionRepo, purchaseRepo, materialRepo, draftRepo, auditRepo, txManager, wsHub)
	verificationService := service.NewVerificationService(verificationRepo, distributionRepo, auditRepo, txManager, wsHub)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	materialHandler := handler.NewMaterialHandler(materialService)
	stockHandler := handler.NewStockHandler(ledgerService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	distributionHandler := handler.NewDistributionHandler(distributionService)
	verificationHandler := handler.NewVerificationHandler(verificationService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	materialHandler.RegisterRoutes(router.Group(""))
	stockHandler.RegisterRoutes(router.Group(""))
	purchaseHandler.RegisterRoutes(router.Group(""))
	distributionHandler.RegisterRoutes(router.Group(""))
	verificationHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
