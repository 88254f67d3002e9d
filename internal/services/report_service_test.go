package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdnguyen/debt-ledger/internal/model"
)

type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) Summary(ctx context.Context) (*model.DebtSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DebtSummary), args.Error(1)
}

func (m *MockSummaryRepository) BalancesFor(ctx context.Context, f model.CustomerFilter) ([]*model.CustomerBalance, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.CustomerBalance), args.Get(1).(int64), args.Error(2)
}

func (m *MockSummaryRepository) OldestLiveDebtDate(ctx context.Context, customerID int64) (*time.Time, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func TestReportService_Report(t *testing.T) {
	repo := new(MockSummaryRepository)
	ctx := context.Background()
	service := NewReportService(repo)

	summary := &model.DebtSummary{
		TotalCustomers:    3,
		CustomersWithDebt: 1,
		TotalDebt:         decimal.NewFromInt(1000000),
		TotalPaid:         decimal.NewFromInt(400000),
		TotalBalance:      decimal.NewFromInt(600000),
	}
	repo.On("Summary", ctx).Return(summary, nil)
	repo.On("BalancesFor", ctx, model.CustomerFilter{Search: "ng", Page: 1, Limit: reportListLimit}).
		Return([]*model.CustomerBalance{
			{Customer: model.Customer{ID: 1, Name: "Nguyen A"}, Balance: decimal.NewFromInt(600000)},
		}, int64(1), nil)

	report, err := service.Report(ctx, "ng")
	require.NoError(t, err)
	assert.Equal(t, summary, report.Summary)
	require.Len(t, report.List, 1)
	repo.AssertExpectations(t)
}

func TestReportService_ClassifyCustomer(t *testing.T) {
	repo := new(MockSummaryRepository)
	service := NewReportService(repo)
	service.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	oldest := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC) // 41 days before
	status := service.ClassifyCustomer(&model.CustomerBalance{
		Balance:        decimal.NewFromInt(500000),
		OldestDebtDate: &oldest,
	})
	assert.Equal(t, model.DebtStateOverdue, status.State)
	assert.Equal(t, 41, status.AgeInDays)

	status = service.ClassifyCustomer(&model.CustomerBalance{Balance: decimal.Zero})
	assert.Equal(t, model.DebtStateNone, status.State)
}

func TestReportService_Export(t *testing.T) {
	repo := new(MockSummaryRepository)
	ctx := context.Background()
	service := NewReportService(repo)
	service.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	repo.On("BalancesFor", ctx, model.CustomerFilter{Page: 1, Limit: exportListLimit}).
		Return([]*model.CustomerBalance{
			{
				Customer:  model.Customer{ID: 1, Name: "Nguyen A"},
				TotalDebt: decimal.NewFromInt(1000000),
				TotalPaid: decimal.NewFromInt(400000),
				Balance:   decimal.NewFromInt(600000),
			},
		}, int64(1), nil)

	data, filename, err := service.Export(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "cong-no-2024-03-01.xlsx", filename)
}

func TestHealthService_Check(t *testing.T) {
	repo := new(MockSummaryRepository)
	ctx := context.Background()
	service := NewHealthService(repo)

	repo.On("Summary", ctx).Return(&model.DebtSummary{}, nil)

	report := service.Check(ctx)
	assert.True(t, report.Healthy)
	assert.Empty(t, report.Error)
}

func TestHealthService_Check_StorageDown(t *testing.T) {
	repo := new(MockSummaryRepository)
	ctx := context.Background()
	service := NewHealthService(repo)

	repo.On("Summary", ctx).Return(nil, assert.AnError)

	report := service.Check(ctx)
	assert.False(t, report.Healthy)
	assert.NotEmpty(t, report.Error)
}
