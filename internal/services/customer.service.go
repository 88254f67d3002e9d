package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tdnguyen/debt-ledger/internal/model"
	"github.com/tdnguyen/debt-ledger/internal/repository"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicatePhone   = errors.New("phone number already in use")
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Update(ctx context.Context, id int64, p model.CustomerUpdateRequest) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	Search(ctx context.Context, f model.CustomerFilter) ([]*model.Customer, int64, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type BalanceRepository interface {
	BalanceOf(ctx context.Context, customerID int64) (*model.CustomerBalance, error)
	BalancesFor(ctx context.Context, f model.CustomerFilter) ([]*model.CustomerBalance, int64, error)
}

type CustomerService struct {
	customerRepo CustomerRepository
	balanceRepo  BalanceRepository
}

func NewCustomerService(customerRepo CustomerRepository, balanceRepo BalanceRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		balanceRepo:  balanceRepo,
	}
}

func (s *CustomerService) Create(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	created, err := s.customerRepo.Create(ctx, &model.Customer{
		Name:  p.Name,
		Phone: p.Phone,
		Notes: p.Notes,
	})
	if err != nil {
		return nil, mapCustomerError(err)
	}
	return created, nil
}

func (s *CustomerService) Update(ctx context.Context, id int64, p model.CustomerUpdateRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	updated, err := s.customerRepo.Update(ctx, id, p)
	if err != nil {
		return nil, mapCustomerError(err)
	}
	return updated, nil
}

// Delete is destructive: the cascade removes every transaction the
// customer owns and there is no undo. Confirmation belongs at the
// interface boundary; once invoked the cascade is unconditional.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return mapCustomerError(err)
	}
	return nil
}

// GetWithBalance is the by-id read path: identity plus ledger totals.
func (s *CustomerService) GetWithBalance(ctx context.Context, id int64) (*model.CustomerBalance, error) {
	b, err := s.balanceRepo.BalanceOf(ctx, id)
	if err != nil {
		return nil, mapCustomerError(err)
	}
	return b, nil
}

// ListWithBalances backs the customer list screen and the export: search
// results joined with per-customer balances in registry order.
func (s *CustomerService) ListWithBalances(ctx context.Context, f model.CustomerFilter) ([]*model.CustomerBalance, int64, error) {
	balances, total, err := s.balanceRepo.BalancesFor(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return balances, total, nil
}

func (s *CustomerService) Search(ctx context.Context, f model.CustomerFilter) ([]*model.Customer, int64, error) {
	return s.customerRepo.Search(ctx, f)
}

// mapCustomerError keeps handlers on this package's error vars instead of
// repository types.
func mapCustomerError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrCustomerNotFound):
		return ErrCustomerNotFound
	case errors.Is(err, repository.ErrDuplicatePhone):
		return ErrDuplicatePhone
	default:
		return err
	}
}
