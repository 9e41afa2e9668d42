package firebase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	goStorage "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// CloudStorage archives raw uploaded workbooks so the original file behind
// any merge can be recovered.
type CloudStorage struct {
	*storage.Client
	bucketName string
}

func NewCloudStorage(ctx context.Context, app *firebase.App, bucketName string) (*CloudStorage, error) {
	if strings.TrimSpace(bucketName) == "" {
		return nil, fmt.Errorf("storage bucket name is required")
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	return &CloudStorage{
		Client:     client,
		bucketName: bucketName,
	}, nil
}

// ArchiveUpload writes workbook bytes under uploads/ and returns the object
// path. The upload id keeps archives of same-named files distinct.
func (s *CloudStorage) ArchiveUpload(ctx context.Context, uploadID, filename string, data []byte) (string, error) {
	if err := validateArchive(filename, data); err != nil {
		return "", fmt.Errorf("archive validation failed: %w", err)
	}

	bucket, err := s.Bucket(s.bucketName)
	if err != nil {
		return "", fmt.Errorf("failed to get storage bucket %q: %w", s.bucketName, err)
	}

	path := fmt.Sprintf("uploads/%s/%s", uploadID, filepath.Base(filename))
	writer := bucket.Object(path).NewWriter(ctx)
	defer writer.Close()

	writer.ObjectAttrs.ContentType = detectContentType(filename)
	writer.ObjectAttrs.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": uuid.New().String(),
		"uploadedAt":                    time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to archive upload data: %w", err)
	}

	return path, nil
}

// ListArchives returns the object paths of every archived workbook.
func (s *CloudStorage) ListArchives(ctx context.Context) ([]string, error) {
	bucket, err := s.Bucket(s.bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage bucket %q: %w", s.bucketName, err)
	}

	objects := bucket.Objects(ctx, &goStorage.Query{Prefix: "uploads/"})

	var paths []string
	for {
		object, err := objects.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate archives: %w", err)
		}
		if strings.HasSuffix(object.Name, "/") {
			continue
		}
		paths = append(paths, object.Name)
	}

	return paths, nil
}

func validateArchive(filename string, data []byte) error {
	if strings.TrimSpace(filename) == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if len(data) == 0 {
		return fmt.Errorf("file data cannot be empty")
	}
	if strings.Contains(filename, "..") || strings.Contains(filename, "//") {
		return fmt.Errorf("invalid file name: contains unsafe characters")
	}
	return nil
}

func detectContentType(filename string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); t != "" {
		return t
	}
	return "application/octet-stream"
}
