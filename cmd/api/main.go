package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"starledger/internal/bot"
	"starledger/internal/config"
	"starledger/internal/handler"
	"starledger/internal/ledger"
	"starledger/internal/middleware"
	"starledger/internal/store"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Open the ledger store
	st, err := openStore(cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open ledger store: %v", err)
	}
	defer st.Close()

	// Load the ledger service
	svc, err := ledger.NewService(st, logger)
	if err != nil {
		log.Fatalf("Failed to load ledger: %v", err)
	}

	// Start the Telegram front end when a token is configured
	if cfg.Telegram.Token != "" {
		tg, err := bot.New(cfg.Telegram.Token, svc, logger)
		if err != nil {
			log.Fatalf("Failed to start telegram bot: %v", err)
		}
		go tg.Run()
	}

	// Initialize router
	h := handler.NewHandler(svc, cfg.AdminAPIKey)
	rateLimiter := middleware.NewIPRateLimiter(cfg.RateLimit)
	router := setupRouter(h, logger, rateLimiter)

	// Configure server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	log.Printf("Server starting on port %s\n", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v\n", err)
	}
}

func openStore(cfg config.StoreConfig) (store.Store, error) {
	if cfg.Driver == "sqlite" {
		return store.NewSQLiteStore(cfg.Path)
	}
	return store.NewFileStore(cfg.Path), nil
}

func setupRouter(h *handler.Handler, logger *logrus.Logger, rateLimiter *middleware.IPRateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Cors())
	router.Use(rateLimiter.RateLimit())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", h.CreateUser)                      // Register user
			users.GET("/:user_id", h.GetWallet)               // Wallet summary
			users.POST("/:user_id/deposit", h.CreateDeposit)  // Record deposit
			users.GET("/:user_id/mine", h.GetMineStatus)      // Mine menu state
			users.POST("/:user_id/mine/claim", h.ClaimMining) // Claim mining reward
			users.GET("/:user_id/history", h.GetHistory)      // Transaction history
			users.POST("/:user_id/withdraw", h.CreateWithdraw)

			// Admin routes
			users.POST("/:user_id/withdraw/resolve", h.AdminAuth(), h.ResolveWithdraw)
		}
	}

	return router
}
