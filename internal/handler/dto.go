package handler

import "github.com/luciechendesign/industry-news-scanner/internal/repository"

type ScanRequest struct {
	SearchSource string `json:"search_source"`
}

type ReportsResponse struct {
	Reports []repository.ArchivedReport `json:"reports"`
	Total   int                         `json:"total"`
	Limit   int                         `json:"limit"`
	Offset  int                         `json:"offset"`
}
