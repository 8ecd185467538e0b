package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/luciechendesign/industry-news-scanner/db"
	"github.com/luciechendesign/industry-news-scanner/internal/config"
	"github.com/luciechendesign/industry-news-scanner/internal/keywords"
	"github.com/luciechendesign/industry-news-scanner/internal/scanner"
	"github.com/luciechendesign/industry-news-scanner/pkg/news"
)

// One-shot scan for cron jobs and local runs: collects, analyzes and prints
// the report JSON to stdout. Logs go to stderr so the output stays parseable.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	source := flag.String("source", "rss", `search source: "rss" or "web"`)
	flag.Parse()

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
	}

	var market news.Client
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		market = news.NewFinnHubClient(key)
	}

	newsScanner := scanner.NewScanner(cfg, chatClient, keywords.NewManager(store), market)

	report, err := newsScanner.Scan(context.Background(), *source)
	if err != nil {
		log.Fatalf("scan failed: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("error encoding report: %v", err)
	}

	fmt.Println(string(out))
}
