package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luciechendesign/industry-news-scanner/internal/config"
	"github.com/luciechendesign/industry-news-scanner/internal/model"
	"github.com/luciechendesign/industry-news-scanner/internal/repository"
)

// ScanRunner runs the two-stage workflow for one source.
type ScanRunner interface {
	Scan(ctx context.Context, searchSource string) (model.ScanReport, error)
}

// ReportArchive persists and lists past scan reports.
type ReportArchive interface {
	Save(report *model.ScanReport) (int64, error)
	GetReports(limit, offset int) ([]repository.ArchivedReport, error)
	GetTotal() (int, error)
}

type ScanHandler struct {
	scanner ScanRunner
	archive ReportArchive
	cfg     *config.Config
}

// NewScanHandler wires the handler. archive may be nil when no database is
// configured; the scan endpoint still works, only archiving is skipped.
func NewScanHandler(scanner ScanRunner, archive ReportArchive, cfg *config.Config) *ScanHandler {
	return &ScanHandler{scanner: scanner, archive: archive, cfg: cfg}
}

func (h *ScanHandler) Scan(c *gin.Context) {
	req := ScanRequest{SearchSource: "rss"}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	report, err := h.scanner.Scan(c.Request.Context(), req.SearchSource)
	if err != nil {
		slog.Error("error running scan", "source", req.SearchSource, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scan failed: " + err.Error()})
		return
	}

	if h.archive != nil {
		if _, err := h.archive.Save(&report); err != nil {
			slog.Error("error archiving scan report", "error", err)
		}
	}

	c.JSON(http.StatusOK, report)
}

func (h *ScanHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"config":    h.cfg.Validate(),
	})
}

func (h *ScanHandler) GetAPIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Industry News Scanner API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"health":  "/health",
			"scan":    "/api/scan (POST)",
			"reports": "/api/reports",
		},
	})
}

func (h *ScanHandler) GetReports(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Report archive not configured"})
		return
	}

	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	total, err := h.archive.GetTotal()
	if err != nil {
		slog.Error("error fetching report total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	reports, err := h.archive.GetReports(limit, offset)
	if err != nil {
		slog.Error("error fetching reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if reports == nil {
		reports = []repository.ArchivedReport{}
	}

	c.JSON(http.StatusOK, ReportsResponse{
		Reports: reports,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return value
}
