package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/franciscosanchezn/minimal-pizza-api/docs"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/config"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/controllers"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/database"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/metrics"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/middleware"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/models"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/services"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Pizza API
// @version 1.0
// @description A minimal Pizza API backed by an in-memory store
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Load configuration
	configuration := loadConfig()

	// Initialize logger
	setUpLogger(configuration)

	// Initialize the pizza store behind the service layer
	pizzaService, cleanup, err := setupPizzaService(configuration)
	checkPanicErr(err)
	defer cleanup()

	if configuration.SeedData {
		checkPanicErr(seedPizzas(pizzaService))
	}

	router := setupRouter(configuration, pizzaService)

	server := &http.Server{
		Addr:              configuration.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, server, time.Duration(configuration.ShutdownTimeout)*time.Second); err != nil {
		log.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
	log.Info("Server stopped")
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter. The level follows APP_ENV
// unless LOG_LEVEL is set explicitly.
func setUpLogger(conf *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})

	level := config.LevelForEnvironment(conf.Environment)
	if os.Getenv("LOG_LEVEL") != "" {
		if parsed, err := log.ParseLevel(conf.LogLevel); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)
	database.SetLogLevel(level)

	if conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupPizzaService builds the PizzaService for the configured store driver.
// The returned cleanup releases any database connection.
func setupPizzaService(conf *config.Config) (services.PizzaService, func(), error) {
	if conf.StoreDriver == config.DriverMemory {
		log.Info("Using in-memory pizza store")
		return services.NewPizzaService(store.NewMemoryStore()), func() {}, nil
	}

	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.StoreDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	if err != nil {
		return nil, nil, err
	}

	// Migrate the schema
	if err := services.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, fmt.Errorf("migrate pizzas: %w", err)
	}

	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}
	return services.NewGormPizzaService(db), cleanup, nil
}

// seedPizzas adds sample pizzas when the store is empty
func seedPizzas(pizzaService services.PizzaService) error {
	count, err := pizzaService.CountPizzas()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("Store already seeded with initial data")
		return nil
	}

	log.Info("Store is empty, seeding initial data")
	pizzas := []models.Pizza{
		{ID: 1, Name: "Margherita", Description: "Tomato sauce, mozzarella and basil"},
		{ID: 2, Name: "Pepperoni", Description: "Tomato sauce, mozzarella and pepperoni"},
		{ID: 3, Name: "Vegetarian", Description: "Tomato sauce, mozzarella, bell peppers and olives"},
	}
	for _, pizza := range pizzas {
		if _, err := pizzaService.CreatePizza(pizza); err != nil {
			return err
		}
	}
	log.WithField("count", len(pizzas)).Info("Store seeded successfully")
	return nil
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter(conf *config.Config, pizzaService services.PizzaService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log.StandardLogger()))

	if conf.MetricsEnabled {
		m := metrics.New(pizzaService.CountPizzas)
		router.Use(m.Middleware())
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	setupRoutes(router, conf, pizzaService)
	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine, conf *config.Config, pizzaService services.PizzaService) {
	pizzaController := controllers.NewPizzaController(pizzaService)
	homeController := controllers.NewHomeController(conf.ServiceName, conf.StoreDriver, pizzaService)

	router.GET("/", homeController.Hello)
	router.GET("/health", homeController.Health)

	pizzas := router.Group("/pizzas")
	{
		pizzas.GET("", pizzaController.GetAllPizzas)
		pizzas.GET("/:id", pizzaController.GetPizzaByID)
		pizzas.POST("", pizzaController.CreatePizza)
		pizzas.PUT("", pizzaController.UpdatePizza)
		pizzas.DELETE("/:id", pizzaController.DeletePizza)
	}

	// Swagger documentation
	if conf.SwaggerEnabled {
		docs.SwaggerInfo.Host = conf.Address()
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// runServer serves until ctx is cancelled, then drains in-flight requests
// for at most shutdownTimeout
func runServer(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
