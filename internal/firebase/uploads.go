package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const uploadsCollection = "uploads"

// UploadRecord is the provenance entry written for every applied upload.
type UploadRecord struct {
	ID          string    `firestore:"id" json:"id"`
	Filename    string    `firestore:"filename" json:"filename"`
	Shape       string    `firestore:"shape" json:"shape"`
	Rows        int       `firestore:"rows" json:"rows"`
	Upserted    int       `firestore:"upserted" json:"upserted"`
	Skipped     int       `firestore:"skipped" json:"skipped"`
	ArchivePath string    `firestore:"archive_path,omitempty" json:"archive_path,omitempty"`
	CreatedAt   time.Time `firestore:"created_at" json:"created_at"`
}

// RecordUpload stores one upload's provenance entry.
func (c *Firestore) RecordUpload(ctx context.Context, record UploadRecord) error {
	if _, err := c.Collection(uploadsCollection).Doc(record.ID).Set(ctx, record); err != nil {
		return fmt.Errorf("failed to record upload %q: %w", record.ID, err)
	}
	return nil
}

// ListUploads returns the most recent upload entries, newest first.
func (c *Firestore) ListUploads(ctx context.Context, limit int) ([]UploadRecord, error) {
	query := c.Collection(uploadsCollection).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var uploads []UploadRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read uploads: %w", err)
		}

		var record UploadRecord
		if err := doc.DataTo(&record); err != nil {
			continue
		}
		uploads = append(uploads, record)
	}

	return uploads, nil
}
