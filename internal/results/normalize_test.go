package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"spaces removed", "Test 1", "Test1"},
		{"trimmed and capitalized", "  college  ", "College"},
		{"empty", "", ""},
		{"punctuation stripped", "Roll No.", "RollNo"},
		{"separators vanish", "crt-batch_2", "Crtbatch2"},
		{"whitespace only", "   ", ""},
		{"symbols only", "++--", ""},
		{"leading digit kept", "42 marks", "42marks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.label))
		})
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	labels := []string{"Test 1", "  college  ", "Roll No.", "SuperSet_Test1", "CRT"}
	for _, label := range labels {
		key := NormalizeKey(label)
		assert.Equal(t, key, NormalizeKey(key), "normalizing %q twice changed the key", label)
	}
}

func TestColumnKey(t *testing.T) {
	tests := []struct {
		name string
		col  Column
		want string
	}{
		{"flat", Column{Top: "Roll No"}, "RollNo"},
		{"tiered", Column{Top: "SuperSet", Sub: "Test1", Tiered: true}, "SuperSet_Test1"},
		{"unnamed sub collapses", Column{Top: "SuperSet", Sub: "Unnamed: 3", Tiered: true}, "SuperSet"},
		{"blank sub collapses", Column{Top: "College", Sub: "   ", Tiered: true}, "College"},
		{"sub with spaces", Column{Top: "College", Sub: "Test 2", Tiered: true}, "College_Test2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.col.Key())
		})
	}
}

func TestColumnFromKey(t *testing.T) {
	tiered := ColumnFromKey("College_Test1")
	assert.True(t, tiered.Tiered)
	assert.Equal(t, "College", tiered.Top)
	assert.Equal(t, "Test1", tiered.Sub)
	assert.Equal(t, "College_Test1", tiered.Key())

	flat := ColumnFromKey("RollNo")
	assert.False(t, flat.Tiered)
	assert.Equal(t, "RollNo", flat.Key())

	// A trailing underscore is not a tier separator.
	assert.False(t, ColumnFromKey("Odd_").Tiered)
}
