package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a ledger entry. A debit increases
// what the customer owes, a credit decreases it.
type TransactionKind string

const (
	KindDebit  TransactionKind = "debit"
	KindCredit TransactionKind = "credit"
)

func (k TransactionKind) Valid() bool {
	return k == KindDebit || k == KindCredit
}

var (
	ErrInvalidKind   = errors.New("kind must be debit or credit")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

type Transaction struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customer_id"`
	Customer        *Customer       `json:"-"`
	Kind            TransactionKind `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Description     *string         `json:"description"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
	Deleted         bool            `json:"-"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionCreateRequest is the input for appending a ledger entry.
// A zero TransactionDate defaults to today at the service layer.
type TransactionCreateRequest struct {
	CustomerID      int64
	Kind            TransactionKind
	Amount          decimal.Decimal
	Description     *string
	TransactionDate time.Time
}

func (p *TransactionCreateRequest) Validate() error {
	if p.CustomerID == 0 {
		return errors.New("customer_id is required")
	}
	if !p.Kind.Valid() {
		return ErrInvalidKind
	}
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	trimOptional(&p.Description)
	return nil
}

// TransactionUpdateRequest mutates amount, description and date only.
// Kind and customer reassignment require delete + recreate.
type TransactionUpdateRequest struct {
	Amount          *decimal.Decimal
	Description     *string
	TransactionDate *time.Time
}

func (p *TransactionUpdateRequest) Validate() error {
	if p.Amount == nil && p.Description == nil && p.TransactionDate == nil {
		return errors.New("no fields to update")
	}
	if p.Amount != nil && !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if p.Description != nil {
		v := strings.TrimSpace(*p.Description)
		p.Description = &v
	}
	return nil
}

// TransactionFilter controls List queries. Page is 1-indexed.
type TransactionFilter struct {
	CustomerID *int64
	Page       int
	Limit      int
}

// FilterByKind returns the entries matching kind, order preserved. The
// recent-transactions view applies this to pages it already fetched.
func FilterByKind(transactions []*Transaction, kind TransactionKind) []*Transaction {
	if !kind.Valid() {
		return transactions
	}
	out := make([]*Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}
