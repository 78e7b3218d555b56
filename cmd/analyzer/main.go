package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"log-analyzer/internal/app"
	"log-analyzer/internal/shared/configs"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("analyzer", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to a YAML config file, defaults apply when omitted")
	serve := flags.Bool("serve", false, "serve the HTTP API instead of running once")
	summary := flags.Int("summary", 0, "print the top N rows of a generated report, 0 disables")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Invalid arguments: %v\n", err)
		return 1
	}

	// Load configuration
	cfg, err := configs.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize application
	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		return 1
	}
	defer application.Close()

	if *serve {
		return serveHTTP(application)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := application.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		return 1
	}
	if *summary > 0 {
		application.PrintSummary(os.Stdout, result, *summary)
	}
	return 0
}

func serveHTTP(application *app.App) int {
	serverErr := make(chan error, 1)
	go func() {
		if err := application.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	fmt.Println("Server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	case <-quit:
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return 1
	}
	return 0
}
