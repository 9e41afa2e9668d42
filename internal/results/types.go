package results

import (
	"context"
	"strings"
)

// HeaderShape reports how a dataset's column headers were laid out at the
// source: one label row, or a group row stacked above a sub-label row.
type HeaderShape int

const (
	ShapeFlat HeaderShape = iota
	ShapeTiered
)

func (s HeaderShape) String() string {
	if s == ShapeTiered {
		return "tiered"
	}
	return "flat"
}

// Column identifies one source column. Flat columns carry only Top; tiered
// columns carry the group label in Top and the sub-label in Sub.
type Column struct {
	Top    string
	Sub    string
	Tiered bool
}

// Key returns the stable normalized key this column flattens to.
func (c Column) Key() string {
	if !c.Tiered || placeholderSub(c.Sub) {
		return NormalizeKey(c.Top)
	}
	return NormalizeKey(c.Top) + "_" + NormalizeKey(c.Sub)
}

// placeholderSub reports whether a sub-label is the marker left by an
// unlabeled second-tier cell ("Unnamed: N" in exported sheets) or is blank.
func placeholderSub(sub string) bool {
	trimmed := strings.TrimSpace(sub)
	return trimmed == "" || strings.Contains(trimmed, "Unnamed")
}

// ColumnFromKey rebuilds a Column from an already-flattened store key. Keys
// of the form Group_Sub come back tiered so platform lookups keep working
// against store-backed snapshots.
func ColumnFromKey(key string) Column {
	if i := strings.Index(key, "_"); i > 0 && i < len(key)-1 {
		return Column{Top: key[:i], Sub: key[i+1:], Tiered: true}
	}
	return Column{Top: key}
}

// Row holds one student's cell values aligned index-for-index with the
// dataset's column sequence. Cells are nil (missing), float64 or string.
type Row []any

// FlatRecord is the externally visible shape of one student: normalized key
// to cell value.
type FlatRecord map[string]any

// Dataset is one point-in-time snapshot of the source: an ordered column
// sequence plus the rows beneath it. Column order is load-bearing; both the
// locator's first-match rule and the flattener's collision rule depend on it.
type Dataset struct {
	Shape   HeaderShape
	Columns []Column
	Rows    []Row
}

// Source produces a fresh dataset snapshot per call. Implemented by the
// spreadsheet reader and the Firestore store.
type Source interface {
	Snapshot(ctx context.Context) (Dataset, error)
}
