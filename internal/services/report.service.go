package services

import (
	"context"
	"time"

	"github.com/tdnguyen/debt-ledger/internal/export"
	"github.com/tdnguyen/debt-ledger/internal/model"
	"github.com/tdnguyen/debt-ledger/pkg/prom"
)

type SummaryRepository interface {
	Summary(ctx context.Context) (*model.DebtSummary, error)
	BalancesFor(ctx context.Context, f model.CustomerFilter) ([]*model.CustomerBalance, int64, error)
	OldestLiveDebtDate(ctx context.Context, customerID int64) (*time.Time, error)
}

// reportListLimit caps the dashboard list the same way the reports screen
// fetched its top slice.
const reportListLimit = 1000

// exportListLimit bounds the export snapshot.
const exportListLimit = 10000

type ReportService struct {
	balanceRepo SummaryRepository
	now         func() time.Time
}

func NewReportService(balanceRepo SummaryRepository) *ReportService {
	return &ReportService{
		balanceRepo: balanceRepo,
		now:         time.Now,
	}
}

func (s *ReportService) Summary(ctx context.Context) (*model.DebtSummary, error) {
	return s.balanceRepo.Summary(ctx)
}

// Report is the dashboard payload: shop-wide summary plus the balance
// list, each entry carrying its debt-aging status.
func (s *ReportService) Report(ctx context.Context, search string) (*model.DebtReport, error) {
	summary, err := s.balanceRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}

	list, _, err := s.balanceRepo.BalancesFor(ctx, model.CustomerFilter{
		Search: search,
		Page:   1,
		Limit:  reportListLimit,
	})
	if err != nil {
		return nil, err
	}

	return &model.DebtReport{Summary: summary, List: list}, nil
}

// ClassifyCustomer evaluates the aging status for one balance row against
// the current clock.
func (s *ReportService) ClassifyCustomer(b *model.CustomerBalance) model.DebtStatus {
	return model.ClassifyDebt(b.Balance, b.OldestDebtDate, s.now())
}

// Export renders the full customer-balance snapshot as an xlsx workbook
// and returns the bytes with a date-stamped filename.
func (s *ReportService) Export(ctx context.Context) ([]byte, string, error) {
	list, _, err := s.balanceRepo.BalancesFor(ctx, model.CustomerFilter{
		Page:  1,
		Limit: exportListLimit,
	})
	if err != nil {
		return nil, "", err
	}

	data, err := export.DebtWorkbook(list)
	if err != nil {
		return nil, "", err
	}

	prom.IncExports()
	filename := "cong-no-" + s.now().Format("2006-01-02") + ".xlsx"
	return data, filename, nil
}
