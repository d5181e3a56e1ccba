// Package main is the entry point for the league statistics collector
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/myusername/tt-league-stats/internal/collector"
	"github.com/myusername/tt-league-stats/internal/config"
	"github.com/myusername/tt-league-stats/internal/output"
	"github.com/myusername/tt-league-stats/internal/storage"
	"github.com/myusername/tt-league-stats/pkg/ranking"
)

// Version is set during build using ldflags
var (
	version = "dev"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	outputFlag := flag.String("output", "", "Output directory for league CSV files (default: DATA_DIR or ./data)")
	scheduleFlag := flag.String("schedule", "", "Cron expression; when set, collect on this schedule instead of once")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("tt-collector version %s\n", version)
		return
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("League statistics collector starting...")
	log.Printf("Version: %s", version)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *outputFlag != "" {
		cfg.DataDir = *outputFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config invalid: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	directory, closeDirectory, err := buildDirectory(cfg)
	if err != nil {
		log.Fatalf("Ranking directory error: %v", err)
	}
	defer closeDirectory()

	c := &collector.Collector{
		Directory: directory,
		DataDir:   cfg.DataDir,
		Delay:     cfg.LeagueDelay,
	}

	if cfg.SheetsEnabled() {
		credentials, err := os.ReadFile(cfg.SheetsCredentials)
		if err != nil {
			log.Fatalf("Failed to read sheets credentials: %v", err)
		}
		sheetsClient, err := output.NewSheetsClient(ctx, credentials, cfg.SheetsURL)
		if err != nil {
			log.Fatalf("Sheets error: %v", err)
		}
		c.Uploader = sheetsClient
	}

	log.Printf("Will collect %d leagues into %s", len(cfg.LeagueURLs), cfg.DataDir)

	if *scheduleFlag == "" {
		runOnce(ctx, c, cfg.LeagueURLs)
		return
	}

	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := scheduler.AddFunc(*scheduleFlag, func() {
		runOnce(ctx, c, cfg.LeagueURLs)
	}); err != nil {
		log.Fatalf("Invalid schedule %q: %v", *scheduleFlag, err)
	}

	scheduler.Start()
	log.Printf("Scheduler started with %q", *scheduleFlag)

	<-ctx.Done()
	log.Println("Shutting down...")
	<-scheduler.Stop().Done()
	log.Println("Stopped")
}

// buildDirectory picks the ranking source and wraps it in the Redis cache when configured
func buildDirectory(cfg *config.Config) (ranking.Directory, func(), error) {
	var directory ranking.Directory
	if cfg.RankingPDF != "" {
		pdfDirectory, err := ranking.LoadPDFDirectory(cfg.RankingPDF)
		if err != nil {
			return nil, nil, err
		}
		directory = pdfDirectory
	} else {
		directory = ranking.NewHTTPDirectory(cfg.RankingBaseURL)
	}

	redisClient := storage.NewRedisClient(cfg.RedisURL)
	closer := func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}
	}
	if !redisClient.Enabled() {
		return directory, closer, nil
	}
	return ranking.NewCachedDirectory(directory, redisClient), closer, nil
}

func runOnce(ctx context.Context, c *collector.Collector, leagueURLs []string) {
	results, err := c.Run(ctx, leagueURLs)
	if err != nil {
		log.Printf("Collection interrupted: %v", err)
	}

	saved := 0
	for _, res := range results {
		if res.Path != "" {
			saved++
		}
	}
	log.Printf("Collection complete: %d of %d leagues saved", saved, len(leagueURLs))
}
