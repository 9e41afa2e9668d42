package results

import (
	"fmt"
	"strings"
)

// Role is the fixed keyword convention used to locate identity and filter
// columns. Matching is case-insensitive substring on either header level.
type Role string

const (
	RoleRoll       Role = "roll"
	RoleDepartment Role = "dept"
	RoleCohort     Role = "crt"
)

// FindRole returns the index of the first column, in column order, whose
// label contains the role keyword on either level.
func FindRole(columns []Column, role Role) (int, error) {
	keyword := strings.ToLower(string(role))
	for i, col := range columns {
		if strings.Contains(strings.ToLower(col.Top), keyword) {
			return i, nil
		}
		if col.Tiered && strings.Contains(strings.ToLower(col.Sub), keyword) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no column matches role %q", ErrColumnNotFound, role)
}

// PlatformColumns returns the indexes, in column order, of every tiered
// column whose group label contains the platform name. An empty result is
// not an error here; callers decide what a degenerate aggregate means.
func PlatformColumns(columns []Column, platform string) []int {
	needle := strings.ToLower(strings.TrimSpace(platform))
	if needle == "" {
		return nil
	}

	var matched []int
	for i, col := range columns {
		if !col.Tiered {
			continue
		}
		if strings.Contains(strings.ToLower(col.Top), needle) {
			matched = append(matched, i)
		}
	}
	return matched
}
