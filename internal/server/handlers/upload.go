package handlers

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Srinivasc16/tempx/internal/excel"
	"github.com/Srinivasc16/tempx/internal/firebase"
	"github.com/Srinivasc16/tempx/internal/results"
)

const maxUploadSize = 10 * 1024 * 1024 // 10MB

// UploadResults parses an uploaded workbook and merges its rows into the
// student store by roll number. Fields absent from the upload are left
// untouched on existing documents.
func (h *Handler) UploadResults(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "uploads require the Firestore-backed store"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	filename := header.Filename
	if !strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only Excel (.xlsx) files are allowed"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	ds, err := excel.ReadWorkbook(bytes.NewReader(data), h.sheet)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unparseable workbook: " + err.Error()})
		return
	}

	rollIdx, err := results.FindRole(ds.Columns, results.RoleRoll)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded sheet has no roll number column"})
		return
	}
	rollKey := ds.Columns[rollIdx].Key()

	records := results.Flatten(ds)
	upserted, skipped, err := h.store.UpsertStudents(c.Request.Context(), records, rollKey)
	if err != nil {
		log.Printf("upload merge failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded rows"})
		return
	}

	upload := firebase.UploadRecord{
		ID:        uuid.New().String(),
		Filename:  filename,
		Shape:     ds.Shape.String(),
		Rows:      len(records),
		Upserted:  upserted,
		Skipped:   skipped,
		CreatedAt: time.Now().UTC(),
	}

	if h.archive != nil {
		path, err := h.archive.ArchiveUpload(c.Request.Context(), upload.ID, filename, data)
		if err != nil {
			log.Printf("upload archive failed: %v", err)
		} else {
			upload.ArchivePath = path
		}
	}

	if err := h.store.RecordUpload(c.Request.Context(), upload); err != nil {
		log.Printf("upload provenance write failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Upload applied",
		"upload_id": upload.ID,
		"shape":     upload.Shape,
		"rows":      upload.Rows,
		"upserted":  upserted,
		"skipped":   skipped,
	})
}

// ListUploads returns recent upload provenance entries, newest first.
func (h *Handler) ListUploads(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "uploads require the Firestore-backed store"})
		return
	}

	limit := 20
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit parameter must be a positive integer"})
			return
		}
		limit = parsed
	}

	uploads, err := h.store.ListUploads(c.Request.Context(), limit)
	if err != nil {
		log.Printf("list uploads failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list uploads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(uploads),
		"uploads": uploads,
	})
}

// ListArchives returns the storage paths of archived workbooks.
func (h *Handler) ListArchives(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "upload archiving is not configured"})
		return
	}

	paths, err := h.archive.ListArchives(c.Request.Context())
	if err != nil {
		log.Printf("list archives failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list archives"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(paths),
		"archives": paths,
	})
}
