package firebase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Srinivasc16/tempx/internal/results"
)

func TestStudentDocDropsEmptyCells(t *testing.T) {
	record := results.FlatRecord{
		"RollNo":        "A1",
		"College_Test1": 80.0,
		"College_Test2": nil,
		"":              "stray",
	}

	doc := studentDoc(record)
	assert.Equal(t, map[string]any{
		"RollNo":        "A1",
		"College_Test1": 80.0,
	}, doc, "empty cells never reach the merge write, so existing fields survive a partial upload")
}

func TestSanitizeDocID(t *testing.T) {
	assert.Equal(t, "21cs-101", sanitizeDocID("  21CS/101 "))
	assert.Equal(t, "a1", sanitizeDocID("A 1"))
	assert.Equal(t, "", sanitizeDocID("   "))
}
