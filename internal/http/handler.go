package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/tide-atlas/internal/domain"
	"go.ngs.io/tide-atlas/internal/usecase"
)

// Handler handles HTTP requests for tide predictions.
type Handler struct {
	service *usecase.Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *usecase.Service) *Handler {
	return &Handler{service: service}
}

// GetPredictions handles GET /v1/tides/predictions.
func (h *Handler) GetPredictions(c *gin.Context) {
	req := usecase.PredictionRequest{
		Model:  c.Query("model"),
		Method: c.Query("method"),
	}

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid longitude: %v", err)})
		return
	}
	req.Lat = lat
	req.Lon = lon

	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end parameters are required"})
		return
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid start time (expected RFC3339): %v", err)})
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid end time (expected RFC3339): %v", err)})
		return
	}
	req.Start = start.UTC()
	req.End = end.UTC()

	intervalStr := c.Query("interval")
	if intervalStr == "" {
		intervalStr = "10m"
	}
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid interval: %v", err)})
		return
	}
	req.Interval = interval

	if dtStr := c.Query("delta_t"); dtStr != "" {
		if req.DeltaT, err = strconv.ParseFloat(dtStr, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid delta_t: %v", err)})
			return
		}
	}

	response, err := h.service.Predict(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetModels handles GET /v1/models.
func (h *Handler) GetModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.service.Models()})
}

// constituentInfo describes one table entry in the listing response.
type constituentInfo struct {
	Name        string  `json:"name"`
	OmegaRadSec float64 `json:"omega_rad_per_sec"`
	Species     int     `json:"species"`
}

// GetConstituents handles GET /v1/constituents.
func (h *Handler) GetConstituents(c *gin.Context) {
	names := h.service.Constituents()
	response := make([]constituentInfo, 0, len(names))
	for _, name := range names {
		con, ok := domain.LookupConstituent(name)
		if !ok {
			continue
		}
		response = append(response, constituentInfo{
			Name:        con.Name,
			OmegaRadSec: con.Omega,
			Species:     con.Species,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"constituents": response,
		"count":        len(response),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
