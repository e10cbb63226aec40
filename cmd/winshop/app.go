package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/winshop/winshop/internal/auth"
	"github.com/winshop/winshop/internal/config"
	"github.com/winshop/winshop/internal/currency"
	"github.com/winshop/winshop/internal/handlers"
	"github.com/winshop/winshop/internal/migrations"
	"github.com/winshop/winshop/internal/payment"
	"github.com/winshop/winshop/internal/services"
	"github.com/winshop/winshop/internal/storage"
)

// App wires the application and its dependencies together.
type App struct {
	cfg    *config.Config
	dbPool *pgxpool.Pool
	echo   *echo.Echo

	// Handlers
	productHandler  *handlers.ProductHandler
	orderHandler    *handlers.OrderHandler
	adminHandler    *handlers.AdminHandler
	uploadHandler   *handlers.UploadHandler
	checkoutHandler *handlers.CheckoutHandler
}

// NewApp creates and initializes the application.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		cfg: cfg,
	}

	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app.initDependencies()
	app.initServer()

	return app, nil
}

// initDatabase connects to the database and applies migrations.
func (app *App) initDatabase(ctx context.Context) error {
	if app.cfg.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}

	log.Println("Running database migrations...")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Migrations completed successfully")

	dbPool, err := pgxpool.New(ctx, app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	log.Println("Successfully connected to database")

	return nil
}

// initDependencies wires storage, services and handlers.
func (app *App) initDependencies() {
	// Storage layer
	orderStorage := storage.NewPostgresOrderStorage(app.dbPool)
	productStorage := storage.NewPostgresProductStorage(app.dbPool)

	// Service layer
	converter := currency.NewConverter(app.cfg.Rates())
	orderService := services.NewOrderService(orderStorage, converter)
	productService := services.NewProductService(productStorage)

	// Payment gateway client
	successURL := app.cfg.BaseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := app.cfg.BaseURL + "/checkout"
	checkoutClient := payment.NewHTTPCheckoutClient(
		app.cfg.PaymentGatewayAddress,
		app.cfg.PaymentSecretKey,
		successURL,
		cancelURL,
		10*time.Second,
	)
	if app.cfg.PaymentSecretKey == "" {
		log.Println("WARNING: STRIPE_SECRET_KEY is not configured. Card checkout is disabled; WhatsApp orders still work.")
	}

	// Handler layer
	app.productHandler = handlers.NewProductHandler(productService)
	app.orderHandler = handlers.NewOrderHandler(orderService)
	app.adminHandler = handlers.NewAdminHandler(app.cfg.AdminPassword, app.cfg.SecureCookies)
	app.uploadHandler = handlers.NewUploadHandler(app.cfg.UploadDir, app.cfg.BaseURL)
	app.checkoutHandler = handlers.NewCheckoutHandler(checkoutClient)
}

// initServer configures the HTTP server and routes.
func (app *App) initServer() {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
		AllowCredentials: true,
	}))

	// Public routes
	e.GET("/api/products", app.productHandler.ListProducts)
	e.POST("/api/orders", app.orderHandler.CreateOrder)
	e.POST("/api/checkout/session", app.checkoutHandler.CreateSession)
	e.POST("/api/admin/login", app.adminHandler.Login)
	e.POST("/api/admin/logout", app.adminHandler.Logout)
	e.GET("/api/admin/check-auth", app.adminHandler.CheckAuth)
	e.Static("/uploads", app.cfg.UploadDir)

	// Admin routes (require the back-office cookie)
	admin := e.Group("/api")
	admin.Use(auth.AdminMiddleware())
	admin.POST("/products", app.productHandler.CreateProduct)
	admin.PATCH("/products/:id", app.productHandler.UpdateProduct)
	admin.DELETE("/products/:id", app.productHandler.DeleteProduct)
	admin.GET("/orders", app.orderHandler.ListOrders)
	admin.GET("/orders/stats", app.orderHandler.Dashboard)
	admin.PATCH("/orders/:id", app.orderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", app.orderHandler.DeleteOrder)
	admin.POST("/upload", app.uploadHandler.Upload)

	app.echo = e
}

// Start runs the HTTP server.
func (app *App) Start() error {
	log.Printf("Starting server on %s", app.cfg.RunAddress)
	if err := app.echo.Start(app.cfg.RunAddress); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Shutdown stops the application cleanly.
func (app *App) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if app.dbPool != nil {
		app.dbPool.Close()
	}

	log.Println("Server gracefully stopped")
	return nil
}
