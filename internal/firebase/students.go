package firebase

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Srinivasc16/tempx/internal/results"
)

const studentsCollection = "students"

// UpsertStudents writes flat records into the students collection keyed by
// roll number. Each write is a merge: fields absent from a new upload stay
// untouched on the stored document. Records without a usable roll value are
// skipped and counted.
func (c *Firestore) UpsertStudents(ctx context.Context, records []results.FlatRecord, rollKey string) (upserted, skipped int, err error) {
	for _, record := range records {
		id := sanitizeDocID(results.ValueString(record[rollKey]))
		if id == "" {
			skipped++
			continue
		}

		if _, err := c.Collection(studentsCollection).Doc(id).Set(ctx, studentDoc(record), firestore.MergeAll); err != nil {
			return upserted, skipped, fmt.Errorf("failed to upsert student %q: %w", id, err)
		}
		upserted++
	}
	return upserted, skipped, nil
}

// studentDoc drops empty cells before the merge write. Combined with
// MergeAll, a field missing from a new upload never clears the stored value.
func studentDoc(record results.FlatRecord) map[string]any {
	doc := make(map[string]any, len(record))
	for key, value := range record {
		if key == "" || value == nil {
			continue
		}
		doc[key] = value
	}
	return doc
}

// Snapshot streams every stored student into a flat-shaped dataset
// implementing results.Source. The column sequence is the union of document
// keys in first-encountered order, with each document's keys visited in
// sorted order so the sequence is deterministic for a given store state.
func (c *Firestore) Snapshot(ctx context.Context) (results.Dataset, error) {
	iter := c.Collection(studentsCollection).Documents(ctx)
	defer iter.Stop()

	var (
		docs     []map[string]any
		keys     []string
		keyIndex = make(map[string]int)
	)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return results.Dataset{}, fmt.Errorf("failed to read students: %w", err)
		}

		data := doc.Data()
		docKeys := make([]string, 0, len(data))
		for key := range data {
			docKeys = append(docKeys, key)
		}
		sort.Strings(docKeys)

		for _, key := range docKeys {
			if _, seen := keyIndex[key]; !seen {
				keyIndex[key] = len(keys)
				keys = append(keys, key)
			}
		}
		docs = append(docs, data)
	}

	columns := make([]results.Column, len(keys))
	for i, key := range keys {
		columns[i] = results.ColumnFromKey(key)
	}

	rows := make([]results.Row, len(docs))
	for i, data := range docs {
		row := make(results.Row, len(keys))
		for j, key := range keys {
			row[j] = data[key]
		}
		rows[i] = row
	}

	return results.Dataset{
		Shape:   results.ShapeFlat,
		Columns: columns,
		Rows:    rows,
	}, nil
}
