package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdnguyen/debt-ledger/internal/model"
	"github.com/tdnguyen/debt-ledger/internal/repository"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, id int64, p model.TransactionUpdateRequest) (*model.Transaction, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Transaction), args.Get(1).(int64), args.Error(2)
}

func TestLedgerService_Append_InvalidKind(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	custRepo := new(MockCustomerRepository)
	service := NewLedgerService(txnRepo, custRepo)

	_, err := service.Append(context.Background(), model.TransactionCreateRequest{
		CustomerID: 1,
		Kind:       "transfer",
		Amount:     decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, model.ErrInvalidKind)
	txnRepo.AssertNotCalled(t, "Create")
}

func TestLedgerService_Append_NonPositiveAmount(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	custRepo := new(MockCustomerRepository)
	service := NewLedgerService(txnRepo, custRepo)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-500)} {
		_, err := service.Append(context.Background(), model.TransactionCreateRequest{
			CustomerID: 1,
			Kind:       model.KindDebit,
			Amount:     amount,
		})
		assert.ErrorIs(t, err, model.ErrInvalidAmount)
	}
	txnRepo.AssertNotCalled(t, "Create")
}

func TestLedgerService_Append_UnknownCustomer(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	custRepo := new(MockCustomerRepository)
	ctx := context.Background()
	service := NewLedgerService(txnRepo, custRepo)

	custRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	custRepo.On("GetByID", ctx, int64(404)).Return(nil, repository.ErrCustomerNotFound)

	_, err := service.Append(ctx, model.TransactionCreateRequest{
		CustomerID: 404,
		Kind:       model.KindDebit,
		Amount:     decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	txnRepo.AssertNotCalled(t, "Create")
}

func TestLedgerService_Append_DefaultsDateToToday(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	custRepo := new(MockCustomerRepository)
	ctx := context.Background()
	service := NewLedgerService(txnRepo, custRepo)

	custRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	custRepo.On("GetByID", ctx, int64(1)).Return(&model.Customer{ID: 1, Name: "Nguyen A"}, nil)
	txnRepo.On("Create", ctx, mock.MatchedBy(func(txn *model.Transaction) bool {
		return !txn.TransactionDate.IsZero()
	})).Return(&model.Transaction{ID: 1, CustomerID: 1, Kind: model.KindDebit}, nil)

	created, err := service.Append(ctx, model.TransactionCreateRequest{
		CustomerID: 1,
		Kind:       model.KindDebit,
		Amount:     decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	txnRepo.AssertExpectations(t)
	custRepo.AssertExpectations(t)
}

func TestLedgerService_Append_TransactionFailure(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	custRepo := new(MockCustomerRepository)
	ctx := context.Background()
	service := NewLedgerService(txnRepo, custRepo)

	boom := errors.New("begin failed")
	custRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(boom)

	_, err := service.Append(ctx, model.TransactionCreateRequest{
		CustomerID: 1,
		Kind:       model.KindDebit,
		Amount:     decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, boom)
	txnRepo.AssertNotCalled(t, "Create")
}

func TestLedgerService_Update_NotFound(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	custRepo := new(MockCustomerRepository)
	ctx := context.Background()
	service := NewLedgerService(txnRepo, custRepo)

	amount := decimal.NewFromInt(2000)
	txnRepo.On("Update", ctx, int64(5), mock.AnythingOfType("model.TransactionUpdateRequest")).
		Return(nil, repository.ErrTransactionNotFound)

	_, err := service.Update(ctx, 5, model.TransactionUpdateRequest{Amount: &amount})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestLedgerService_Update_NoFields(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	custRepo := new(MockCustomerRepository)
	service := NewLedgerService(txnRepo, custRepo)

	_, err := service.Update(context.Background(), 5, model.TransactionUpdateRequest{})
	assert.ErrorIs(t, err, ErrValidation)
	txnRepo.AssertNotCalled(t, "Update")
}

func TestLedgerService_SoftDelete_NotFound(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	custRepo := new(MockCustomerRepository)
	ctx := context.Background()
	service := NewLedgerService(txnRepo, custRepo)

	txnRepo.On("SoftDelete", ctx, int64(11)).Return(repository.ErrTransactionNotFound)

	err := service.SoftDelete(ctx, 11)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestLedgerService_List_FiltersByKind(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	custRepo := new(MockCustomerRepository)
	ctx := context.Background()
	service := NewLedgerService(txnRepo, custRepo)

	page := []*model.Transaction{
		{ID: 1, Kind: model.KindDebit, TransactionDate: time.Now()},
		{ID: 2, Kind: model.KindCredit, TransactionDate: time.Now()},
		{ID: 3, Kind: model.KindDebit, TransactionDate: time.Now()},
	}
	txnRepo.On("List", ctx, mock.AnythingOfType("model.TransactionFilter")).
		Return(page, int64(3), nil)

	items, total, err := service.List(ctx, model.TransactionFilter{}, model.KindDebit)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total, "total follows the storage page, not the in-memory filter")
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(3), items[1].ID)
}
