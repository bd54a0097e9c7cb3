package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sefazor/gatherly-gateway/internal/config"
	"github.com/sefazor/gatherly-gateway/internal/controller"
	"github.com/sefazor/gatherly-gateway/internal/handler"
	"github.com/sefazor/gatherly-gateway/internal/middleware"
	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/internal/querycache"
	"github.com/sefazor/gatherly-gateway/internal/session"
	"github.com/sefazor/gatherly-gateway/pkg/eventapi"
	"github.com/sefazor/gatherly-gateway/pkg/logger"
	"github.com/sefazor/gatherly-gateway/pkg/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	cfg := config.LoadConfig()

	appLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer appLogger.Sync()

	// Shared state: the persisted session and the query cache. Both are
	// mutated only through their own mutators.
	store := session.NewStore(cfg.SessionFile)
	cache := querycache.New(cfg.CacheTTL)
	invalidate := querycache.NewDispatcher(cache)

	// Platform client; the token source reads the session store so the
	// client never holds credentials of its own.
	api := eventapi.New(cfg.APIBaseURL, store.Token, cfg.HTTPTimeout, appLogger)

	validator := utils.NewValidator()

	// Controllers
	authController := controller.NewAuthController(api, store, invalidate, appLogger)
	eventController := controller.NewEventController(api, cache, invalidate, store, appLogger)
	participationController := controller.NewParticipationController(api, cache, invalidate, appLogger)
	adminController := controller.NewAdminController(api, cache, appLogger)
	fileController := controller.NewFileController(api, cache, invalidate, appLogger)

	// Handlers
	authHandler := handler.NewAuthHandler(authController, validator)
	userHandler := handler.NewUserHandler(authController, validator)
	eventHandler := handler.NewEventHandler(eventController, validator)
	participationHandler := handler.NewParticipationHandler(participationController, validator)
	adminHandler := handler.NewAdminHandler(adminController)
	fileHandler := handler.NewFileHandler(fileController)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))
	app.Use(middleware.SessionMiddleware(store))

	apiGroup := app.Group("/api")

	// Auth
	auth := apiGroup.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/logout", authHandler.Logout)
	apiGroup.Get("/session", authHandler.Session)

	// Public browsing. Static segments must register before /:id.
	events := apiGroup.Group("/events")
	events.Get("/popular", eventHandler.Popular)
	events.Get("/search", eventHandler.Search)
	events.Get("/filters", eventHandler.Filters)
	events.Get("/", eventHandler.Browse)
	events.Get("/:id", eventHandler.Detail)
	events.Get("/:id/files", fileHandler.EventFiles)

	// Participant actions
	events.Post("/:id/join", middleware.RequireRole(models.RoleParticipant), participationHandler.Join)
	events.Delete("/:id/leave", middleware.RequireRole(models.RoleParticipant), participationHandler.Leave)

	// Organizer surfaces
	organizerOnly := middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin)
	events.Post("/", organizerOnly, eventHandler.Create)
	events.Put("/:id", organizerOnly, eventHandler.Update)
	events.Delete("/:id", organizerOnly, eventHandler.Delete)
	events.Get("/:id/participants", organizerOnly, participationHandler.Roster)

	events.Get("/:id/checkin-qr", middleware.RequireAuth(), participationHandler.CheckInQR)

	my := apiGroup.Group("/my", middleware.RequireAuth())
	my.Get("/events", organizerOnly, eventHandler.MyEvents)
	my.Get("/participations", participationHandler.MyParticipations)

	user := apiGroup.Group("/user", middleware.RequireAuth())
	user.Get("/profile", userHandler.GetMyProfile)
	user.Put("/profile", userHandler.UpdateProfile)

	apiGroup.Post("/uploads", middleware.RequireAuth(), fileHandler.Upload)
	apiGroup.Delete("/files/:filename", organizerOnly, fileHandler.Delete)

	// Admin
	admin := apiGroup.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/stats/timeseries", adminHandler.Timeseries)
	admin.Get("/users", adminHandler.Users)

	// Start server
	serverErrChan := make(chan error, 1)
	go func() {
		appLogger.Infow("starting gateway", "port", cfg.Port, "platform", cfg.APIBaseURL)
		if err := app.Listen(":" + cfg.Port); err != nil {
			serverErrChan <- err
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		appLogger.Infow("received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		appLogger.Errorw("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Errorw("shutdown failed", "error", err)
	}
	appLogger.Info("shutdown complete")
}
