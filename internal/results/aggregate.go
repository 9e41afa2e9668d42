package results

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/montanaflynn/stats"
)

// testKeyPattern marks the normalized keys that count toward the overall
// average: any key containing "Test" immediately followed by digits.
var testKeyPattern = regexp.MustCompile(`Test[0-9]+`)

// Topper is the student with the highest row-wise score sum for a platform.
type Topper struct {
	RollNo string     `json:"roll_no"`
	Total  float64    `json:"total"`
	Record FlatRecord `json:"record"`
}

// StudentByRoll returns the flat record of the first row whose roll-number
// cell equals roll, compared case-insensitively.
func StudentByRoll(ds Dataset, roll string) (FlatRecord, error) {
	idx, err := FindRole(ds.Columns, RoleRoll)
	if err != nil {
		return nil, err
	}

	row, ok := rowByValue(ds.Rows, idx, roll)
	if !ok {
		return nil, fmt.Errorf("%w: student %q", ErrNotFound, roll)
	}
	return flattenRow(ds.Columns, row), nil
}

// FilterByRole returns the flat records of every row whose cell under the
// role column equals value, compared case-insensitively. Zero matches is a
// NotFound, distinct from the role column itself being absent.
func FilterByRole(ds Dataset, role Role, value string) ([]FlatRecord, error) {
	idx, err := FindRole(ds.Columns, role)
	if err != nil {
		return nil, err
	}

	var records []FlatRecord
	for _, row := range ds.Rows {
		if rowMatches(row, idx, value) {
			records = append(records, flattenRow(ds.Columns, row))
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no rows where %s = %q", ErrNotFound, role, value)
	}
	return records, nil
}

// PlatformAverages computes the mean of each of a platform's columns
// independently across all rows, skipping missing and non-numeric cells.
// Keys are "{platform}_{NormalizedSub}", values rounded to 2 decimals.
func PlatformAverages(ds Dataset, platform string) (map[string]float64, error) {
	cols := PlatformColumns(ds.Columns, platform)
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: platform %q has no columns", ErrNotFound, platform)
	}

	averages := make(map[string]float64, len(cols))
	for _, idx := range cols {
		values := columnValues(ds.Rows, idx)
		mean, ok := meanOf(values)
		if !ok {
			continue
		}

		col := ds.Columns[idx]
		key := NormalizeKey(col.Top)
		if !placeholderSub(col.Sub) {
			key = fmt.Sprintf("%s_%s", platform, NormalizeKey(col.Sub))
		}
		averages[key] = round2(mean)
	}
	return averages, nil
}

// StudentAverages groups one student's tiered columns by platform label and
// averages each group's scores, keyed by the normalized platform name.
func StudentAverages(ds Dataset, roll string) (map[string]float64, error) {
	rollIdx, err := FindRole(ds.Columns, RoleRoll)
	if err != nil {
		return nil, err
	}

	row, ok := rowByValue(ds.Rows, rollIdx, roll)
	if !ok {
		return nil, fmt.Errorf("%w: student %q", ErrNotFound, roll)
	}

	averages := make(map[string]float64)
	for _, group := range platformGroups(ds.Columns) {
		var values []float64
		for _, idx := range group.cols {
			if idx >= len(row) {
				continue
			}
			if v, numeric := numericValue(row[idx]); numeric {
				values = append(values, v)
			}
		}
		if mean, ok := meanOf(values); ok {
			averages[group.key] = round2(mean)
		}
	}
	return averages, nil
}

// DepartmentAverages filters rows to one department, then reports a
// mean-of-means per platform: each column is averaged across the filtered
// rows first, and those per-column means are averaged in turn. This is not
// the flat mean over all cells and must not be collapsed into one.
func DepartmentAverages(ds Dataset, dept string) (map[string]float64, error) {
	deptIdx, err := FindRole(ds.Columns, RoleDepartment)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, row := range ds.Rows {
		if rowMatches(row, deptIdx, dept) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows for department %q", ErrNotFound, dept)
	}

	averages := make(map[string]float64)
	for _, group := range platformGroups(ds.Columns) {
		var columnMeans []float64
		for _, idx := range group.cols {
			if mean, ok := meanOf(columnValues(rows, idx)); ok {
				columnMeans = append(columnMeans, mean)
			}
		}
		if mean, ok := meanOf(columnMeans); ok {
			averages[group.key] = round2(mean)
		}
	}
	return averages, nil
}

// PlatformTopper returns the row with the maximum row-wise sum over a
// platform's columns, counting missing cells as zero. Ties go to the first
// row in row order.
func PlatformTopper(ds Dataset, platform string) (Topper, error) {
	rollIdx, err := FindRole(ds.Columns, RoleRoll)
	if err != nil {
		return Topper{}, err
	}

	cols := PlatformColumns(ds.Columns, platform)
	if len(cols) == 0 {
		return Topper{}, fmt.Errorf("%w: platform %q has no columns", ErrNotFound, platform)
	}
	if len(ds.Rows) == 0 {
		return Topper{}, fmt.Errorf("%w: no rows to rank for platform %q", ErrNotFound, platform)
	}

	bestRow := -1
	bestTotal := 0.0
	for i, row := range ds.Rows {
		total := 0.0
		for _, idx := range cols {
			if idx >= len(row) {
				continue
			}
			if v, numeric := numericValue(row[idx]); numeric {
				total += v
			}
		}
		if bestRow == -1 || total > bestTotal {
			bestRow = i
			bestTotal = total
		}
	}

	row := ds.Rows[bestRow]
	var rollNo string
	if rollIdx < len(row) {
		rollNo = ValueString(row[rollIdx])
	}

	return Topper{
		RollNo: rollNo,
		Total:  round2(bestTotal),
		Record: flattenRow(ds.Columns, row),
	}, nil
}

// OverallAverage is one flat mean over every numeric cell whose normalized
// key matches the TestN pattern, across all rows and columns. Deliberately a
// different method from the department mean-of-means.
func OverallAverage(ds Dataset) (float64, error) {
	var cells []float64
	for _, row := range ds.Rows {
		for i, col := range ds.Columns {
			if i >= len(row) || !testKeyPattern.MatchString(col.Key()) {
				continue
			}
			if v, numeric := numericValue(row[i]); numeric {
				cells = append(cells, v)
			}
		}
	}

	mean, ok := meanOf(cells)
	if !ok {
		return 0, fmt.Errorf("%w: no numeric test columns", ErrNotFound)
	}
	return round2(mean), nil
}

// platformGroup collects the column indexes of one top-level platform label.
type platformGroup struct {
	key  string
	cols []int
}

// platformGroups buckets tiered columns with real sub-labels by their
// normalized group label, preserving first-appearance order. Spanned
// identity columns (roll, dept and the like carry placeholder subs) stay
// out of every group.
func platformGroups(columns []Column) []platformGroup {
	var groups []platformGroup
	index := make(map[string]int)
	for i, col := range columns {
		if !col.Tiered || placeholderSub(col.Sub) {
			continue
		}
		key := NormalizeKey(col.Top)
		if key == "" {
			continue
		}
		at, seen := index[key]
		if !seen {
			index[key] = len(groups)
			groups = append(groups, platformGroup{key: key})
			at = len(groups) - 1
		}
		groups[at].cols = append(groups[at].cols, i)
	}
	return groups
}

func columnValues(rows []Row, idx int) []float64 {
	var values []float64
	for _, row := range rows {
		if idx >= len(row) {
			continue
		}
		if v, numeric := numericValue(row[idx]); numeric {
			values = append(values, v)
		}
	}
	return values
}

func rowMatches(row Row, idx int, value string) bool {
	if idx >= len(row) {
		return false
	}
	return strings.EqualFold(ValueString(row[idx]), strings.TrimSpace(value))
}

func rowByValue(rows []Row, idx int, value string) (Row, bool) {
	for _, row := range rows {
		if rowMatches(row, idx, value) {
			return row, true
		}
	}
	return nil, false
}

func meanOf(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	return mean, true
}

func round2(v float64) float64 {
	rounded, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return rounded
}
