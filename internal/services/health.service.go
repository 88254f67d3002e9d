package services

import (
	"context"
	"time"
)

// HealthService reports whether storage answers. It runs the summary
// rollup rather than a bare ping so the check exercises the same query
// path the dashboard depends on.
type HealthService struct {
	balanceRepo SummaryRepository
}

func NewHealthService(balanceRepo SummaryRepository) *HealthService {
	return &HealthService{
		balanceRepo: balanceRepo,
	}
}

type HealthReport struct {
	Healthy      bool          `json:"healthy"`
	ResponseTime time.Duration `json:"-"`
	Error        string        `json:"error,omitempty"`
}

func (s *HealthService) Check(ctx context.Context) HealthReport {
	start := time.Now()
	_, err := s.balanceRepo.Summary(ctx)
	report := HealthReport{
		Healthy:      err == nil,
		ResponseTime: time.Since(start),
	}
	if err != nil {
		report.Error = err.Error()
	}
	return report
}
