// Package server assembles the student results API from its configured
// data source, handlers and middleware.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	fb "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/Srinivasc16/tempx/internal/excel"
	"github.com/Srinivasc16/tempx/internal/firebase"
	"github.com/Srinivasc16/tempx/internal/results"
	"github.com/Srinivasc16/tempx/internal/server/handlers"
	"github.com/Srinivasc16/tempx/internal/server/middleware"
	"github.com/Srinivasc16/tempx/internal/server/ratelimit"
	"github.com/Srinivasc16/tempx/internal/server/router"
)

const (
	defaultPort          = 8080
	defaultExcelFile     = "students.xlsx"
	defaultRateLimit     = 120
	defaultWindowSeconds = 60
)

// Config is read from the environment. RESULTS_SOURCE selects where rows
// come from: "excel" re-parses the spreadsheet per request, "firestore"
// serves uploaded rows from the document store.
type Config struct {
	Port          int
	Source        string
	ExcelFile     string
	SheetName     string
	StorageBucket string
	RateLimit     int
	WindowSeconds int
}

func LoadConfig() Config {
	return Config{
		Port:          envInt("PORT", defaultPort),
		Source:        envString("RESULTS_SOURCE", "excel"),
		ExcelFile:     envString("EXCEL_FILE", defaultExcelFile),
		SheetName:     os.Getenv("SHEET_NAME"),
		StorageBucket: os.Getenv("STORAGE_BUCKET"),
		RateLimit:     envInt("RATE_LIMIT", defaultRateLimit),
		WindowSeconds: envInt("RATE_WINDOW_SECONDS", defaultWindowSeconds),
	}
}

// NewServer builds the HTTP server for the configured source.
func NewServer() *http.Server {
	cfg := LoadConfig()

	var (
		source  results.Source
		store   *firebase.Firestore
		archive *firebase.CloudStorage
	)

	switch cfg.Source {
	case "excel":
		source = excel.NewSource(cfg.ExcelFile, cfg.SheetName)
		log.Printf("serving from spreadsheet %s", cfg.ExcelFile)

	case "firestore":
		ctx := context.Background()
		sa := option.WithCredentialsFile(os.Getenv("FIREBASE_CONFIG"))
		app, err := fb.NewApp(ctx, nil, sa)
		if err != nil {
			log.Fatalf("error initializing firebase app: %v\n", err)
		}

		store, err = firebase.NewFirestore(ctx, app)
		if err != nil {
			log.Fatalf("error initializing firestore: %v\n", err)
		}
		source = store

		if cfg.StorageBucket != "" {
			archive, err = firebase.NewCloudStorage(ctx, app, cfg.StorageBucket)
			if err != nil {
				log.Printf("upload archiving disabled: %v", err)
				archive = nil
			}
		}
		log.Printf("serving from firestore")

	default:
		log.Fatalf("invalid RESULTS_SOURCE %q (options: excel, firestore)", cfg.Source)
	}

	handler := handlers.New(source, store, archive, cfg.SheetName)
	mw := middleware.NewManager(ratelimit.NewLimiter(), cfg.RateLimit, cfg.WindowSeconds)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(handler, mw),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
