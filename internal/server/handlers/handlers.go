package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Srinivasc16/tempx/internal/firebase"
	"github.com/Srinivasc16/tempx/internal/results"
)

// Handler serves every endpoint from a fresh source snapshot per request.
// store and archive are nil when the API runs against a spreadsheet file.
type Handler struct {
	source  results.Source
	store   *firebase.Firestore
	archive *firebase.CloudStorage
	sheet   string
}

func New(source results.Source, store *firebase.Firestore, archive *firebase.CloudStorage, sheet string) *Handler {
	return &Handler{
		source:  source,
		store:   store,
		archive: archive,
		sheet:   sheet,
	}
}

// Home greets API consumers.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Student Results API",
	})
}

// Health responds with a service heartbeat, including store reachability
// when the API is store-backed.
func (h *Handler) Health(c *gin.Context) {
	payload := gin.H{
		"status":  "healthy",
		"message": "Student Results API is running",
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			log.Printf("health: %v", err)
			payload["store"] = "unreachable"
		} else {
			payload["store"] = "ok"
		}
	}

	c.JSON(http.StatusOK, payload)
}

// snapshot loads a fresh dataset or writes the failure response.
func (h *Handler) snapshot(c *gin.Context) (results.Dataset, bool) {
	ds, err := h.source.Snapshot(c.Request.Context())
	if err != nil {
		log.Printf("snapshot failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "data source unavailable"})
		return results.Dataset{}, false
	}
	return ds, true
}

// respondError maps core errors onto HTTP statuses: a query that matched
// nothing is the client's 404, a missing role column is the data's 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, results.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, results.ErrColumnNotFound):
		log.Printf("data shape mismatch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		log.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func normalizeParam(value string) string {
	return strings.TrimSpace(value)
}
