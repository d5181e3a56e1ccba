// Package main is the entry point for the league statistics viewer
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/myusername/tt-league-stats/internal/config"
	"github.com/myusername/tt-league-stats/internal/viewer"
)

var (
	version = "dev"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	dataFlag := flag.String("data", "", "Directory with league CSV files (default: DATA_DIR or ./data)")
	addrFlag := flag.String("addr", "", "Listen address (default: VIEWER_ADDR or :8501)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("tt-viewer version %s\n", version)
		return
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *dataFlag != "" {
		cfg.DataDir = *dataFlag
	}
	if *addrFlag != "" {
		cfg.ViewerAddr = *addrFlag
	}

	if _, err := viewer.ListLeagues(cfg.DataDir); err != nil {
		log.Printf("Warning: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.ViewerAddr,
		Handler:           viewer.NewServer(cfg.DataDir),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Viewer listening on %s, serving %s", cfg.ViewerAddr, cfg.DataDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
