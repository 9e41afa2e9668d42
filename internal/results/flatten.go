package results

import (
	"strconv"
	"strings"
)

// CoerceValue converts a raw cell into its record form: numeric text becomes
// float64, blank text becomes nil, anything else stays a string.
func CoerceValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return trimmed
}

// Flatten converts every row into a FlatRecord keyed by normalized column
// keys. When two columns normalize to the same key, the later column in
// column order wins.
func Flatten(ds Dataset) []FlatRecord {
	records := make([]FlatRecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		records = append(records, flattenRow(ds.Columns, row))
	}
	return records
}

func flattenRow(columns []Column, row Row) FlatRecord {
	record := make(FlatRecord, len(columns))
	for i, col := range columns {
		var value any
		if i < len(row) {
			value = row[i]
		}
		record[col.Key()] = value
	}
	return record
}

// ValueString renders a cell for comparisons and document IDs. Whole floats
// print without a decimal part so a roll number read as 101.0 still matches
// the query "101".
func ValueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// numericValue extracts a float from a cell if it holds one.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
