package main

import (
	"context"
	"log"
	"os"
	"time"

	fb "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/Srinivasc16/tempx/internal/excel"
	"github.com/Srinivasc16/tempx/internal/firebase"
	"github.com/Srinivasc16/tempx/internal/results"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("note: could not load .env file (%v); continuing with system environment", err)
	}
	log.SetPrefix("[results-importer] ")
}

// The importer runs the same spreadsheet-to-store pipeline as the upload
// endpoint, as a one-shot bulk load from disk.
func main() {
	path := os.Getenv("EXCEL_FILE")
	if path == "" {
		path = "students.xlsx"
	}

	ctx := context.Background()

	sa := option.WithCredentialsFile(os.Getenv("FIREBASE_CONFIG"))
	app, err := fb.NewApp(ctx, nil, sa)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v\n", err)
	}

	store, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatalf("error initializing firestore: %v\n", err)
	}
	defer store.Close()

	source := excel.NewSource(path, os.Getenv("SHEET_NAME"))
	ds, err := source.Snapshot(ctx)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	log.Printf("read %d rows (%s headers) from %s", len(ds.Rows), ds.Shape, path)

	rollIdx, err := results.FindRole(ds.Columns, results.RoleRoll)
	if err != nil {
		log.Fatalf("spreadsheet has no roll number column: %v", err)
	}

	records := results.Flatten(ds)
	upserted, skipped, err := store.UpsertStudents(ctx, records, ds.Columns[rollIdx].Key())
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	upload := firebase.UploadRecord{
		ID:        uuid.New().String(),
		Filename:  path,
		Shape:     ds.Shape.String(),
		Rows:      len(records),
		Upserted:  upserted,
		Skipped:   skipped,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.RecordUpload(ctx, upload); err != nil {
		log.Printf("provenance write failed: %v", err)
	}

	log.Printf("import complete: %d upserted, %d skipped", upserted, skipped)
}
