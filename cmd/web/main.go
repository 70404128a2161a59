package main

import (
	"context"
	"fmt"
	"log"

	"github.com/routescan/internal/config"
	"github.com/routescan/internal/db"
	"github.com/routescan/internal/debug"
	"github.com/routescan/internal/extract"
	"github.com/routescan/internal/history"
	"github.com/routescan/internal/ocr"
	"github.com/routescan/internal/ocr/tesseract"
	"github.com/routescan/internal/web"
)

func main() {
	// Load environment configuration
	app, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	fmt.Println("=== Routescan Web Interface ===")
	fmt.Printf("Server: http://%s\n", app.Addr())

	deps := web.Dependencies{
		Extractor: extract.New(extract.WithDebug(app.Debug)),
		Engine:    tesseract.New(app.OCRLanguages...),
		OCROptions: []ocr.InputOption{
			ocr.WithLanguages(app.OCRLanguages...),
			ocr.WithDPI(app.OCRDPI),
			ocr.WithMaxDimension(app.OCRMaxDimension),
		},
	}
	debug.Output(app.Debug, "OCR languages %v, dpi %d, max dimension %d", app.OCRLanguages, app.OCRDPI, app.OCRMaxDimension)

	// Initialize history database, if configured
	if app.HistoryEnabled() {
		conn, err := db.Open(app.HistoryDriver, app.HistoryDSN)
		if err != nil {
			log.Fatalf("Failed to connect to history database: %v", err)
		}
		store := history.NewStore(conn)
		if err := store.Migrate(context.Background()); err != nil {
			conn.Close()
			log.Fatalf("Failed to migrate history database: %v", err)
		}
		deps.Store = store
		deps.Closer = conn
		fmt.Printf("History: %s\n", app.HistoryDriver)
	} else {
		fmt.Println("History: disabled")
	}

	webConfig := web.ConfigFromApp(app)
	server, err := web.NewServer(webConfig, deps)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	fmt.Println("\nFeatures enabled:")
	fmt.Printf("  • API key: %v\n", webConfig.Auth.Enabled)
	fmt.Printf("  • Libpostal components: %v\n", webConfig.Features.LibpostalEnabled)
	fmt.Println()

	// Start server
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
