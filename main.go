package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1craig1/game-release-tracker/internal/config"
	"github.com/1craig1/game-release-tracker/internal/database"
	"github.com/1craig1/game-release-tracker/internal/email"
	"github.com/1craig1/game-release-tracker/internal/rawg"
	"github.com/1craig1/game-release-tracker/internal/service"
	gamesync "github.com/1craig1/game-release-tracker/internal/sync"
	transport "github.com/1craig1/game-release-tracker/internal/transport/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	cfg := config.Load()
	database.InitDB(cfg)
	db := database.GetDB()

	var emailSender *email.Sender
	if cfg.SMTPHost != "" {
		emailSender = email.NewSender(cfg)
		log.Println("✅ [EMAIL] SMTP sender initialized")
	} else {
		log.Println("⚠️ [EMAIL] SMTP disabled (no SMTP_HOST)")
	}

	rawgClient := rawg.NewClient(cfg.RawgAPIURL, cfg.RawgAPIKey)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	rememberMeTTL := time.Duration(cfg.RememberMeTTLDays) * 24 * time.Hour

	notifService := service.NewNotificationService(db, emailSender)
	authService := service.NewAuthService(db, sessionTTL, rememberMeTTL)
	userService := service.NewUserService(db)
	gameService := service.NewGameService(db)
	wishlistService := service.NewWishlistService(db, notifService)
	syncService := gamesync.NewGameSyncService(db, rawgClient, notifService, cfg.MatureTags)
	log.Println("✅ [SERVICE] Services initialized")

	if cfg.SyncEnabled {
		syncService.StartScheduler()
		log.Println("🔄 [SYNC] Catalog sync scheduler started")
	} else {
		log.Println("⚠️ [SYNC] Catalog sync disabled (SYNC_ENABLED=false)")
	}

	handler := transport.NewHandler(cfg, authService, userService, gameService, wishlistService, notifService, syncService)

	app := fiber.New(fiber.Config{
		AppName:      "game-release-tracker",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cache-Control",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${ua}\n",
	}))

	handler.RegisterRoutes(app)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		resp := fiber.Map{
			"status":       "ok",
			"service":      "game-release-tracker",
			"uptime":       uptime.String(),
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"sync_enabled": cfg.SyncEnabled,
		}
		if last := syncService.LastSyncTime(); !last.IsZero() {
			resp["last_sync"] = last.Format(time.RFC3339)
		}
		return c.JSON(resp)
	})
	log.Println("✅ [ROUTES] Registered /health")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 game-release-tracker starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 CORS allowed origins: %s", cfg.AllowedOrigins)
	log.Printf("   🎮 Catalog API: %s", cfg.RawgAPIURL)
	log.Println("✅ Server ready.")

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var errMsg string
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		errMsg = e.Message
	} else {
		errMsg = err.Error()
	}
	log.Printf("🔥 [ERROR] [%d] %s %s → %v | IP=%s | UA=%s",
		code,
		c.Method(),
		c.Path(),
		errMsg,
		c.IP(),
		c.Get("User-Agent"),
	)
	return c.Status(code).JSON(fiber.Map{
		"error": "something went wrong",
	})
}
