package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRole(t *testing.T) {
	columns := []Column{
		{Top: "S.No"},
		{Top: "STUDENT ROLLNO"},
		{Top: "Roll Number"},
		{Top: "Dept"},
		{Top: "College", Sub: "Test1", Tiered: true},
	}

	idx, err := FindRole(columns, RoleRoll)
	require.NoError(t, err)
	assert.Equal(t, 1, idx, "first matching column in order wins")

	idx, err = FindRole(columns, RoleDepartment)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	_, err = FindRole(columns, RoleCohort)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestFindRoleMatchesEitherLevel(t *testing.T) {
	columns := []Column{
		{Top: "Identity", Sub: "Roll No", Tiered: true},
		{Top: "CRT Batch", Sub: "", Tiered: true},
	}

	idx, err := FindRole(columns, RoleRoll)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = FindRole(columns, RoleCohort)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestFindRoleNoColumns(t *testing.T) {
	_, err := FindRole(nil, RoleRoll)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestPlatformColumns(t *testing.T) {
	columns := []Column{
		{Top: "Roll No"},
		{Top: "College", Sub: "Test1", Tiered: true},
		{Top: "SuperSet", Sub: "Test1", Tiered: true},
		{Top: "College", Sub: "Test2", Tiered: true},
		{Top: "CollegeExtra", Sub: "Test1", Tiered: true},
	}

	assert.Equal(t, []int{1, 3, 4}, PlatformColumns(columns, "college"),
		"substring match on the group label, in column order")
	assert.Equal(t, []int{2}, PlatformColumns(columns, "SUPERSET"))
	assert.Empty(t, PlatformColumns(columns, "hackerrank"))
	assert.Empty(t, PlatformColumns(columns, "  "))
}

func TestPlatformColumnsIgnoreFlat(t *testing.T) {
	columns := []Column{{Top: "College Marks"}}
	assert.Empty(t, PlatformColumns(columns, "college"),
		"flat columns never count as platform columns")
}
