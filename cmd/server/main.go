package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/cache"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/cms"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/config"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/handler"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/mailer"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/repository"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Limer Properties API")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Content store client
	cmsClient := cms.NewClient(&cfg.CMS)
	log.Printf("✅ Content store client initialized")
	log.Printf("   - Query endpoint: %s", cfg.CMS.QueryURL())

	// Optional content cache
	var contentCache service.ContentCache
	if cfg.Redis.Enabled {
		redisCache := cache.New(&cfg.Redis)
		defer redisCache.Close()
		contentCache = redisCache
		log.Printf("✅ Content cache enabled (Redis at %s, TTL %ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	} else {
		log.Println("⚠️  Content cache disabled - every request hits the content store")
	}

	// Optional inquiry log
	var repo *repository.InquiryRepository
	if cfg.Postgres.Enabled {
		repo, err = repository.NewInquiryRepository(
			cfg.Postgres.DSN,
			cfg.Postgres.MaxConnections,
			cfg.Postgres.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()
		log.Println("✅ Inquiry log connected to PostgreSQL")
	} else {
		log.Println("⚠️  Inquiry log disabled - set DATABASE_URL to enable")
	}

	// Mail provider client
	mailClient := mailer.NewClient(&cfg.Mail)
	if mailClient.IsEnabled() {
		log.Printf("✅ Mail provider client initialized")
		log.Printf("   - API base: %s", cfg.Mail.APIBase)
		log.Printf("   - From: %s <%s>", cfg.Mail.FromName, cfg.Mail.FromEmail)
	} else {
		log.Println("⚠️  Mail provider is disabled - email inquiries will fail")
		log.Println("   Set MAIL_API_KEY environment variable to enable email dispatch")
	}

	// Initialize services
	catalog := service.NewCatalog(cmsClient, contentCache)
	var logger service.InquiryLogger
	if repo != nil {
		logger = repo
	}
	dispatcher := service.NewDispatcher(mailClient, logger)

	log.Println("✅ Services initialized")

	// Initialize handlers
	propertyHandler := handler.NewPropertyHandler(catalog, cfg.Catalog.DefaultLimit, cfg.Catalog.MaxLimit)
	inquiryHandler := handler.NewInquiryHandler(dispatcher, repo, cfg.Contact)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "limer-properties-api",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Catalog endpoints
		apiV1.GET("/properties", propertyHandler.List)
		apiV1.GET("/properties/featured", propertyHandler.Featured)
		apiV1.GET("/properties/:slug", propertyHandler.GetBySlug)
		apiV1.GET("/filters/options", propertyHandler.Options)

		// Inquiry endpoints
		apiV1.POST("/inquiries/email", inquiryHandler.SendEmail)
		apiV1.GET("/inquiries/link", inquiryHandler.Link)
		apiV1.GET("/inquiries/recent", inquiryHandler.Recent)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API Documentation: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
