package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ironsheep/lqip"
	"github.com/ironsheep/lqip/internal/config"
	"github.com/ironsheep/lqip/internal/logger"
	"github.com/ironsheep/lqip/internal/server"
)

// Build information - set by ldflags during build
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("lqip-mcp %s\n", lqip.Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("lqip-mcp - MCP server for low-quality image placeholders")
			fmt.Println()
			fmt.Println("Usage: lqip-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  LQIP_LOG_LEVEL=debug         Log level: debug, info, warn, error")
			fmt.Println("  LQIP_MAX_CONCURRENCY=4       Tool calls processed at once")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr (stdout is for MCP protocol)
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Debug("starting lqip-mcp",
		zap.String("version", lqip.Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
		zap.Int("max_concurrency", cfg.MaxConcurrency))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(
		server.WithGenerator(lqip.New(lqip.WithLogger(log))),
		server.WithLogger(log),
		server.WithMaxConcurrency(cfg.MaxConcurrency),
	)
	// Any failure escaping the request goroutines ends the process.
	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
