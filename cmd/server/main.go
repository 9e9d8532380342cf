package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/config"
	"github.com/younes-radi/order-app/internal/delivery"
	"github.com/younes-radi/order-app/internal/middleware"
	"github.com/younes-radi/order-app/internal/repository"
	"github.com/younes-radi/order-app/internal/usecase"
	"github.com/younes-radi/order-app/pkg/db"
)

func main() {

	logger := setupLogger("info")

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}
	logger.Infof("Starting Order App...")

	conn, err := db.Connect(cfg.DatabasePath)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Errorf("Error closing database connection: %v", err)
		} else {
			logger.Info("Database connection closed.")
		}
	}()

	if err := db.InitSchema(conn); err != nil {
		logger.Fatalf("Failed to initialize database schema: %v", err)
	}
	if cfg.SeedDefaultData {
		if err := db.SeedDefaultData(conn, logger); err != nil {
			logger.Fatalf("Failed to seed default data: %v", err)
		}
	}

	customerRepo := repository.NewSQLiteCustomerRepository(conn, logger)
	productRepo := repository.NewSQLiteProductRepository(conn, logger)
	orderRepo := repository.NewSQLiteOrderRepository(conn, logger)
	orderItemRepo := repository.NewSQLiteOrderItemRepository(conn, logger)
	paymentRepo := repository.NewSQLitePaymentRepository(conn, logger)
	userRepo := repository.NewSQLiteUserRepository(conn, logger)
	roleRepo := repository.NewSQLiteRoleRepository(conn, logger)

	sessions := usecase.NewSessionRegistry()

	orderUseCase := usecase.NewOrderUseCase(orderRepo, orderItemRepo, productRepo, customerRepo, paymentRepo, logger)
	customerUseCase := usecase.NewCustomerUseCase(customerRepo, orderRepo, logger)
	productUseCase := usecase.NewProductUseCase(productRepo, orderItemRepo, cfg.LowStockThreshold, logger)
	authUseCase := usecase.NewAuthUseCase(userRepo, roleRepo, sessions, orderUseCase, logger)
	reportUseCase := usecase.NewReportUseCase(orderRepo, customerRepo, paymentRepo, productRepo, cfg.LowStockThreshold, logger)
	maintenanceUseCase := usecase.NewMaintenanceUseCase(cfg.DatabasePath, logger)

	authHandler := delivery.NewAuthHandler(authUseCase, logger)
	customerHandler := delivery.NewCustomerHandler(customerUseCase, logger)
	productHandler := delivery.NewProductHandler(productUseCase, logger)
	orderHandler := delivery.NewOrderHandler(orderUseCase, logger)
	reportHandler := delivery.NewReportHandler(reportUseCase, logger)
	adminHandler := delivery.NewAdminHandler(authUseCase, maintenanceUseCase, logger)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())

	authHandler.RegisterPublicRoutes(router)

	protected := router.Group("/")
	protected.Use(middleware.SessionAuth(sessions, logger))
	{
		authHandler.RegisterRoutes(protected)
		customerHandler.RegisterRoutes(protected)
		productHandler.RegisterRoutes(protected)
		orderHandler.RegisterRoutes(protected)
		reportHandler.RegisterRoutes(protected)

		adminOnly := protected.Group("/")
		adminOnly.Use(middleware.AdminOnly(authUseCase, logger))
		{
			adminHandler.RegisterRoutes(adminOnly)
			reportHandler.RegisterAdminRoutes(adminOnly)
		}
	}

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to serve HTTP: %v", err)
		}
		logger.Info("HTTP server stopped serving.")
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Signal listener started.")

	<-quit
	logger.Warn("Shutdown signal received...")

	logger.Info("Attempting graceful shutdown of HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}
	logger.Info("Order App shut down gracefully.")
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
