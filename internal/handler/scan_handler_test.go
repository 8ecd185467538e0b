package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/luciechendesign/industry-news-scanner/internal/config"
	"github.com/luciechendesign/industry-news-scanner/internal/model"
	"github.com/luciechendesign/industry-news-scanner/internal/repository"
)

type fakeScanner struct {
	report     model.ScanReport
	err        error
	lastSource string
}

func (f *fakeScanner) Scan(ctx context.Context, searchSource string) (model.ScanReport, error) {
	f.lastSource = searchSource
	return f.report, f.err
}

type fakeArchive struct {
	saved   []model.ScanReport
	reports []repository.ArchivedReport
	total   int
	err     error
}

func (f *fakeArchive) Save(report *model.ScanReport) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, *report)
	return int64(len(f.saved)), nil
}

func (f *fakeArchive) GetReports(limit, offset int) ([]repository.ArchivedReport, error) {
	return f.reports, f.err
}

func (f *fakeArchive) GetTotal() (int, error) {
	return f.total, f.err
}

func newTestRouter(scanner ScanRunner, archive ReportArchive) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewScanHandler(scanner, archive, &config.Config{AIProvider: "openai", AIAPIKey: "key"})
	r.POST("/api/scan", h.Scan)
	r.GET("/api/reports", h.GetReports)
	r.GET("/api", h.GetAPIInfo)
	r.GET("/health", h.GetHealth)
	return r
}

func TestScan_ReturnsReport(t *testing.T) {
	scanner := &fakeScanner{report: model.NewScanReport(
		[]model.AnalyzedReportItem{{Title: "t", Importance: model.ImportanceHigh}},
		"rss", []string{"Example Blog"}, nil,
	)}
	r := newTestRouter(scanner, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/scan", strings.NewReader(`{"search_source": "rss"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var report model.ScanReport
	json.Unmarshal(w.Body.Bytes(), &report)
	assert.Equal(t, 1, report.TotalItems)
	assert.Equal(t, 1, report.HighImportanceCount)
	assert.Equal(t, "rss", scanner.lastSource)
}

func TestScan_EmptyBodyDefaultsToRSS(t *testing.T) {
	scanner := &fakeScanner{report: model.NewScanReport(nil, "rss", nil, nil)}
	r := newTestRouter(scanner, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/scan", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rss", scanner.lastSource)
}

func TestScan_WebSourcePassedThrough(t *testing.T) {
	scanner := &fakeScanner{report: model.NewScanReport(nil, "web", nil, []string{"kw"})}
	r := newTestRouter(scanner, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/scan", strings.NewReader(`{"search_source": "web"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "web", scanner.lastSource)
}

func TestScan_FailureReturns500(t *testing.T) {
	scanner := &fakeScanner{err: errors.New("provider down")}
	r := newTestRouter(scanner, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/scan", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestScan_ArchivesReport(t *testing.T) {
	scanner := &fakeScanner{report: model.NewScanReport(nil, "rss", nil, nil)}
	archive := &fakeArchive{}
	r := newTestRouter(scanner, archive)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/scan", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, len(archive.saved))
}

func TestScan_ArchiveFailureNonFatal(t *testing.T) {
	scanner := &fakeScanner{report: model.NewScanReport(nil, "rss", nil, nil)}
	archive := &fakeArchive{err: errors.New("db down")}
	r := newTestRouter(scanner, archive)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/scan", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeScanner{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Status string          `json:"status"`
		Config map[string]bool `json:"config"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, true, res.Config["ai_api_key_set"])
}

func TestGetAPIInfo(t *testing.T) {
	r := newTestRouter(&fakeScanner{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Name string `json:"name"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Industry News Scanner API", res.Name)
}

func TestGetReports(t *testing.T) {
	archive := &fakeArchive{
		reports: []repository.ArchivedReport{{ID: 1, SearchSource: "rss", TotalItems: 3}},
		total:   1,
	}
	r := newTestRouter(&fakeScanner{}, archive)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/reports?limit=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ReportsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, len(res.Reports))
	assert.Equal(t, 5, res.Limit)
}

func TestGetReports_WithoutArchive(t *testing.T) {
	r := newTestRouter(&fakeScanner{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/reports", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetReports_DatabaseError(t *testing.T) {
	archive := &fakeArchive{err: errors.New("db down")}
	r := newTestRouter(&fakeScanner{}, archive)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/reports", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
