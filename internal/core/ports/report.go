package ports

import "go.trai.ch/margo/internal/core/domain"

// ReportWriter persists run reports.
//
//go:generate mockgen -source=report.go -destination=mocks/mock_report.go -package=mocks
type ReportWriter interface {
	Write(path string, report *domain.Report) error
}
