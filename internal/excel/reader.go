// Package excel reads student result workbooks into datasets, detecting
// whether the sheet carries one header row or a stacked group/sub-label
// pair.
package excel

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Srinivasc16/tempx/internal/results"
)

// Source re-parses a workbook from disk on every snapshot. No caching:
// concurrent requests each see the file as it is at read time.
type Source struct {
	Path  string
	Sheet string
}

func NewSource(path, sheet string) *Source {
	return &Source{Path: path, Sheet: sheet}
}

// Snapshot implements results.Source.
func (s *Source) Snapshot(_ context.Context) (results.Dataset, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return results.Dataset{}, fmt.Errorf("spreadsheet %s unavailable: %w", s.Path, err)
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return results.Dataset{}, fmt.Errorf("failed to open spreadsheet %s: %w", s.Path, err)
	}
	defer f.Close()

	return readWorkbook(f, s.Sheet)
}

// ReadWorkbook parses workbook bytes, as received from an upload.
func ReadWorkbook(r io.Reader, sheet string) (results.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return results.Dataset{}, fmt.Errorf("unreadable workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) (results.Dataset, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return results.Dataset{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return Parse(rows)
}

// Parse converts raw sheet rows into a dataset. Header detection is an
// explicit two-step contract: attempt the tiered interpretation first, and
// if the first two rows do not come back tiered, parse flat.
func Parse(raw [][]string) (results.Dataset, error) {
	if len(raw) == 0 {
		return results.Dataset{}, fmt.Errorf("sheet has no header row")
	}

	if tieredHeader(raw) {
		return parseTiered(raw), nil
	}
	return parseFlat(raw), nil
}

// tieredHeader reports whether the first two rows form a group row over a
// sub-label row. The tell is a spanned group: a blank first-row cell with a
// labeled second-row cell beneath it, following at least one group label.
// Merged group cells surface exactly that way from excelize.
func tieredHeader(raw [][]string) bool {
	if len(raw) < 2 {
		return false
	}

	top, sub := raw[0], raw[1]
	seenGroup := false
	for i := range sub {
		if i < len(top) && strings.TrimSpace(top[i]) != "" {
			seenGroup = true
			continue
		}
		if seenGroup && strings.TrimSpace(sub[i]) != "" {
			return true
		}
	}
	return false
}

func parseTiered(raw [][]string) results.Dataset {
	top, sub := raw[0], raw[1]
	width := len(top)
	if len(sub) > width {
		width = len(sub)
	}

	columns := make([]results.Column, 0, width)
	keep := make([]int, 0, width)
	group := ""
	for i := 0; i < width; i++ {
		if label := strings.TrimSpace(cellAt(top, i)); label != "" {
			group = label
		}
		subLabel := strings.TrimSpace(cellAt(sub, i))
		if group == "" && subLabel == "" {
			continue
		}
		columns = append(columns, results.Column{Top: group, Sub: subLabel, Tiered: true})
		keep = append(keep, i)
	}

	return results.Dataset{
		Shape:   results.ShapeTiered,
		Columns: columns,
		Rows:    dataRows(raw[2:], keep),
	}
}

func parseFlat(raw [][]string) results.Dataset {
	header := raw[0]
	columns := make([]results.Column, 0, len(header))
	keep := make([]int, 0, len(header))
	for i, label := range header {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		columns = append(columns, results.Column{Top: label})
		keep = append(keep, i)
	}

	return results.Dataset{
		Shape:   results.ShapeFlat,
		Columns: columns,
		Rows:    dataRows(raw[1:], keep),
	}
}

func dataRows(raw [][]string, keep []int) []results.Row {
	rows := make([]results.Row, 0, len(raw))
	for _, cells := range raw {
		row := make(results.Row, len(keep))
		for out, in := range keep {
			row[out] = results.CoerceValue(cellAt(cells, in))
		}
		rows = append(rows, row)
	}
	return rows
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}
