package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Srinivasc16/tempx/internal/results"
)

// GetAllStudents returns every student as a flat record.
func (h *Handler) GetAllStudents(c *gin.Context) {
	ds, ok := h.snapshot(c)
	if !ok {
		return
	}

	records := results.Flatten(ds)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(records),
		"shape":    ds.Shape.String(),
		"students": records,
	})
}

// GetStudentByRoll returns one student matched case-insensitively by roll
// number.
func (h *Handler) GetStudentByRoll(c *gin.Context) {
	roll := normalizeParam(c.Param("rollno"))
	if roll == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Roll number is required"})
		return
	}

	ds, ok := h.snapshot(c)
	if !ok {
		return
	}

	record, err := results.StudentByRoll(ds, roll)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetStudentsByDept lists the students of one department.
func (h *Handler) GetStudentsByDept(c *gin.Context) {
	h.filterByRole(c, results.RoleDepartment, normalizeParam(c.Param("dept")), "Department")
}

// GetStudentsByCRT lists the students of one CRT batch.
func (h *Handler) GetStudentsByCRT(c *gin.Context) {
	h.filterByRole(c, results.RoleCohort, normalizeParam(c.Param("batch")), "Batch")
}

func (h *Handler) filterByRole(c *gin.Context, role results.Role, value, label string) {
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": label + " is required"})
		return
	}

	ds, ok := h.snapshot(c)
	if !ok {
		return
	}

	records, err := results.FilterByRole(ds, role, value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(records),
		"filter":   value,
		"students": records,
	})
}
