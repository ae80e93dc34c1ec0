package service

import (
	"context"
	"regexp"
	"time"

	"coverapi/internal/apperror"
	"coverapi/internal/report"
)

const (
	defaultReportType   = "summary"
	defaultReportPeriod = "month"
)

var reportTypePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// ReportInput selects the report to generate. Empty fields take defaults.
type ReportInput struct {
	Type   string
	Period string
}

// GeneratedReport is a rendered PDF and its attachment name.
type GeneratedReport struct {
	Filename string
	Content  []byte
}

// ReportService renders analytics reports.
type ReportService interface {
	Generate(ctx context.Context, in ReportInput) (*GeneratedReport, error)
}

type reportService struct {
	analytics AnalyticsService
	now       func() time.Time
}

func NewReportService(analytics AnalyticsService) ReportService {
	return &reportService{analytics: analytics, now: time.Now}
}

// periodStart returns the beginning of period relative to now.
func periodStart(period string, now time.Time) (time.Time, bool) {
	switch period {
	case "day":
		return startOfDay(now), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

func (s *reportService) Generate(ctx context.Context, in ReportInput) (*GeneratedReport, error) {
	if in.Type == "" {
		in.Type = defaultReportType
	}
	if in.Period == "" {
		in.Period = defaultReportPeriod
	}
	if !reportTypePattern.MatchString(in.Type) {
		return nil, apperror.Validation("reportType", "Type de rapport invalide")
	}

	now := s.now().UTC()
	from, ok := periodStart(in.Period, now)
	if !ok {
		return nil, apperror.Validation("period", "Période invalide (day, week, month ou year)")
	}

	stats, err := s.analytics.Stats(ctx, from)
	if err != nil {
		return nil, apperror.Persistence("report stats", err)
	}

	r := report.Report{Type: in.Type, Period: in.Period, From: from, GeneratedAt: now, Stats: stats}
	content, err := report.Render(r)
	if err != nil {
		return nil, err
	}
	return &GeneratedReport{Filename: r.Filename(), Content: content}, nil
}
