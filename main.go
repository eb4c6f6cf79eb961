package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"connregistry/config"
	"connregistry/controllers"
	_ "connregistry/docs"
	"connregistry/models"
	"connregistry/pkg/logger"
	"connregistry/services"
	"connregistry/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           connregistry
// @version         1.0
// @description     Registry for external-system connection records

// @BasePath  /api

func main() {
	// 1) Load config
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("LoadConfig error: %v", err)
	}

	// 2) Init structured logger with config
	logLevel := logger.ParseLogLevel(config.Cfg.LogLevel)
	logger.InitWithConfig(
		config.Cfg.LogFile,
		logLevel,
		config.Cfg.LogMaxSize,
		config.Cfg.LogMaxBackups,
		config.Cfg.LogMaxAge,
		config.Cfg.LogCompress,
	)
	logger.Infof("Starting connregistry with log level: %s", config.Cfg.LogLevel)

	// 3) Connect DB (GORM)
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("ConnectDB error: %v", err)
	}
	if config.DB == nil {
		log.Fatal("Database is nil after ConnectDB")
	}
	if err := config.DB.AutoMigrate(&models.Connection{}); err != nil {
		log.Fatalf("AutoMigrate error: %v", err)
	}

	controllers.SetConnectionService(services.NewConnectionService())

	// 4) Setup Gin
	router := gin.Default()
	router.Use(utils.LoggerMiddleware())

	v1 := router.Group("/api")
	{
		controllers.RegisterConnectionRoutes(v1)
	}

	// 5) Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 6) Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Infof("Received shutdown signal, stopping")
		os.Exit(0)
	}()

	// 7) Run
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	logger.Infof("Starting server at port %s", port)
	router.Run("0.0.0.0:" + port)
}
