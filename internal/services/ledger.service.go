package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tdnguyen/debt-ledger/internal/model"
	"github.com/tdnguyen/debt-ledger/internal/repository"
	"github.com/tdnguyen/debt-ledger/pkg/prom"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	Update(ctx context.Context, id int64, p model.TransactionUpdateRequest) (*model.Transaction, error)
	SoftDelete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Transaction, error)
	List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error)
}

// LedgerService owns the transaction write path and the recent-entries
// read path. Aggregates are never maintained here; every balance read
// recomputes from live rows so edits and soft-deletes cannot drift.
type LedgerService struct {
	transactionRepo TransactionRepository
	customerRepo    CustomerRepository
}

func NewLedgerService(transactionRepo TransactionRepository, customerRepo CustomerRepository) *LedgerService {
	return &LedgerService{
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
	}
}

func (s *LedgerService) Append(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		if errors.Is(err, model.ErrInvalidKind) || errors.Is(err, model.ErrInvalidAmount) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if p.TransactionDate.IsZero() {
		p.TransactionDate = time.Now()
	}

	// the existence check and the insert share one transaction; the FK is
	// still the backstop for a customer deleted concurrently
	var created *model.Transaction
	err := s.customerRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.customerRepo.GetByID(ctx, p.CustomerID); err != nil {
			return mapCustomerError(err)
		}

		c, err := s.transactionRepo.Create(ctx, &model.Transaction{
			CustomerID:      p.CustomerID,
			Kind:            p.Kind,
			Amount:          p.Amount,
			Description:     p.Description,
			TransactionDate: p.TransactionDate,
		})
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncLedgerEntriesCreated(string(created.Kind))
	return created, nil
}

func (s *LedgerService) Update(ctx context.Context, id int64, p model.TransactionUpdateRequest) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		if errors.Is(err, model.ErrInvalidAmount) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	updated, err := s.transactionRepo.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *LedgerService) SoftDelete(ctx context.Context, id int64) error {
	err := s.transactionRepo.SoftDelete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}

// List returns a page of live entries. The optional kind filter applies to
// the already-fetched page, not the storage query; the page window and
// total follow the storage contract.
func (s *LedgerService) List(ctx context.Context, f model.TransactionFilter, kind model.TransactionKind) ([]*model.Transaction, int64, error) {
	items, total, err := s.transactionRepo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if kind != "" {
		items = model.FilterByKind(items, kind)
	}
	return items, total, nil
}
