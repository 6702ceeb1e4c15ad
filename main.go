package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/imudaynigam/finance-tracker-techbridge/cache"
	"github.com/imudaynigam/finance-tracker-techbridge/config"
	"github.com/imudaynigam/finance-tracker-techbridge/handlers"
	"github.com/imudaynigam/finance-tracker-techbridge/middleware"
	"github.com/imudaynigam/finance-tracker-techbridge/migration"
	"github.com/imudaynigam/finance-tracker-techbridge/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := config.SeedData(db); err != nil {
		log.Fatal("Failed to seed data:", err)
	}

	if os.Getenv("NORMALIZE_CATEGORIES") == "true" {
		if err := migration.NormalizeCategories(db); err != nil {
			log.Fatal("Failed to normalize categories:", err)
		}
	}

	// Redis is best-effort: without it the in-memory store takes over and
	// the app keeps the same cache-aside semantics.
	var store cache.Store
	if client := config.InitRedis(); client != nil {
		store = cache.NewRedisStore(client)
	} else {
		store = cache.NewMemoryStore()
	}

	wsHandler := handlers.NewWSHandler()

	router := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	corsConfig := cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		log.Printf("📨 %s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration)
	})

	router.Use(middleware.RateLimiter(100, time.Minute))

	api := router.Group("/api")
	{
		routes.SetupAuthRoutes(api, db, store)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.SetupUserRoutes(protected, db, store)
			routes.SetupTransactionRoutes(protected, db, store, wsHandler)
			routes.SetupCategoryRoutes(protected, db, store)
			routes.SetupAnalyticsRoutes(protected, db, store)
			routes.SetupAdminRoutes(protected, db, store)
		}
	}

	router.GET("/ws/dashboard", middleware.AuthMiddleware(), wsHandler.HandleWS)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
