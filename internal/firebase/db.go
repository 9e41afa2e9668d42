package firebase

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore wraps the Firestore client and provides the student result store.
type Firestore struct {
	*firestore.Client
}

// NewFirestore creates a new Firestore client from a Firebase app.
func NewFirestore(ctx context.Context, app *firebase.App) (*Firestore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firestore client: %w", err)
	}

	return &Firestore{
		Client: client,
	}, nil
}

// Ping checks store reachability with a single document read. A NotFound
// still means the store answered.
func (c *Firestore) Ping(ctx context.Context) error {
	_, err := c.Collection("meta").Doc("health").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("firestore unreachable: %w", err)
	}
	return nil
}

// sanitizeDocID sanitizes a value for use as a Firestore document ID.
// Lower-casing keeps roll-number lookups case-insensitive at the ID level.
func sanitizeDocID(value string) string {
	sanitized := strings.ToLower(strings.TrimSpace(value))
	sanitized = strings.ReplaceAll(sanitized, "/", "-")
	sanitized = strings.ReplaceAll(sanitized, " ", "")
	return sanitized
}
