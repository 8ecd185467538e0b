package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/luciechendesign/industry-news-scanner/internal/model"
)

// ArchivedReport is one persisted scan report row. The full report document
// is stored as JSONB; the counters are denormalized for cheap listing.
type ArchivedReport struct {
	ID                  int64            `json:"id"`
	SearchSource        string           `json:"search_source"`
	TotalItems          int              `json:"total_items"`
	HighImportanceCount int              `json:"high_importance_count"`
	CreatedAt           time.Time        `json:"created_at"`
	Report              model.ScanReport `json:"report"`
}

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Init creates the archive table when it does not exist yet.
func (r *ReportRepository) Init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_report (
			id BIGSERIAL PRIMARY KEY,
			search_source TEXT NOT NULL,
			total_items INT NOT NULL,
			high_importance_count INT NOT NULL,
			report JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (r *ReportRepository) Save(report *model.ScanReport) (int64, error) {
	doc, err := json.Marshal(report)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRow(`
		INSERT INTO scan_report(search_source, total_items, high_importance_count, report)
		VALUES($1, $2, $3, $4)
		RETURNING id
	`, report.SearchSource, report.TotalItems, report.HighImportanceCount, doc).Scan(&id)

	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ReportRepository) GetReports(limit, offset int) ([]ArchivedReport, error) {
	rows, err := r.db.Query(`
		SELECT id, search_source, total_items, high_importance_count, report, created_at
		FROM scan_report
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []ArchivedReport
	for rows.Next() {
		var a ArchivedReport
		var doc []byte
		if err := rows.Scan(&a.ID, &a.SearchSource, &a.TotalItems, &a.HighImportanceCount, &doc, &a.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(doc, &a.Report); err != nil {
			return nil, err
		}
		reports = append(reports, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *ReportRepository) GetReportByID(id int64) (*ArchivedReport, error) {
	var a ArchivedReport
	var doc []byte
	err := r.db.QueryRow(`
		SELECT id, search_source, total_items, high_importance_count, report, created_at
		FROM scan_report
		WHERE id = $1
	`, id).Scan(&a.ID, &a.SearchSource, &a.TotalItems, &a.HighImportanceCount, &doc, &a.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(doc, &a.Report); err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *ReportRepository) GetTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM scan_report
	`).Scan(&total)
	return total, err
}
