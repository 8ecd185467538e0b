package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/luciechendesign/industry-news-scanner/db"
	"github.com/luciechendesign/industry-news-scanner/internal/config"
	"github.com/luciechendesign/industry-news-scanner/internal/handler"
	"github.com/luciechendesign/industry-news-scanner/internal/keywords"
	"github.com/luciechendesign/industry-news-scanner/internal/repository"
	"github.com/luciechendesign/industry-news-scanner/internal/scanner"
	"github.com/luciechendesign/industry-news-scanner/pkg/news"
)

func main() {

	godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	chatClient, err := scanner.NewChatClient(cfg)
	if err != nil {
		log.Fatalf("error creating AI client: %v", err)
	}

	var store keywords.Store = keywords.NewFileStore(cfg.KeywordsPath)
	if db.RedisConfigured() {
		if err := db.ConnectRedis(); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		store = keywords.NewRedisStore(db.Redis)
		slog.Info("keyword stats stored in Redis")
	}
	manager := keywords.NewManager(store)

	var market news.Client
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		market = news.NewFinnHubClient(key)
		slog.Info("market news collection enabled", "provider", market.Name())
	}

	var archive handler.ReportArchive
	if db.Configured() {
		if err := db.Connect(); err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer db.Close()

		reportRepo := repository.NewReportRepository(db.DB)
		if err := reportRepo.Init(); err != nil {
			log.Fatalf("error initializing report archive: %v", err)
		}
		archive = reportRepo
		slog.Info("report archive enabled")
	}

	newsScanner := scanner.NewScanner(cfg, chatClient, manager, market)
	scanHandler := handler.NewScanHandler(newsScanner, archive, cfg)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/api/scan", scanHandler.Scan)
	r.GET("/api/reports", scanHandler.GetReports)
	r.GET("/api", scanHandler.GetAPIInfo)
	r.GET("/health", scanHandler.GetHealth)

	if _, err := os.Stat("frontend"); err == nil {
		r.Static("/static", "frontend")
		r.StaticFile("/", "frontend/index.html")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
