package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Srinivasc16/tempx/internal/results"
)

// GetPlatformAverage reports the per-test means of one platform's columns.
func (h *Handler) GetPlatformAverage(c *gin.Context) {
	platform := normalizeParam(c.Param("platform"))
	if platform == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Platform is required"})
		return
	}

	ds, ok := h.snapshot(c)
	if !ok {
		return
	}

	averages, err := results.PlatformAverages(ds, platform)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"platform": platform,
		"averages": averages,
	})
}

// GetStudentAverage reports one student's per-platform means.
func (h *Handler) GetStudentAverage(c *gin.Context) {
	roll := normalizeParam(c.Param("rollno"))
	if roll == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Roll number is required"})
		return
	}

	ds, ok := h.snapshot(c)
	if !ok {
		return
	}

	averages, err := results.StudentAverages(ds, roll)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roll_no":  roll,
		"averages": averages,
	})
}

// GetDepartmentAverage reports a department's per-platform mean-of-means.
func (h *Handler) GetDepartmentAverage(c *gin.Context) {
	dept := normalizeParam(c.Param("dept"))
	if dept == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Department is required"})
		return
	}

	ds, ok := h.snapshot(c)
	if !ok {
		return
	}

	averages, err := results.DepartmentAverages(ds, dept)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"department": dept,
		"averages":   averages,
	})
}

// GetOverallAverage reports the flat mean over every numeric TestN cell.
func (h *Handler) GetOverallAverage(c *gin.Context) {
	ds, ok := h.snapshot(c)
	if !ok {
		return
	}

	average, err := results.OverallAverage(ds)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overall_average": average,
	})
}

// GetPlatformTopper reports the student with the highest score sum for one
// platform.
func (h *Handler) GetPlatformTopper(c *gin.Context) {
	platform := normalizeParam(c.Param("platform"))
	if platform == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Platform is required"})
		return
	}

	ds, ok := h.snapshot(c)
	if !ok {
		return
	}

	topper, err := results.PlatformTopper(ds, platform)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"platform": platform,
		"topper":   topper,
	})
}
