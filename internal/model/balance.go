package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerBalance is a customer joined with its ledger totals, computed
// over live (not soft-deleted) transactions only.
type CustomerBalance struct {
	Customer
	TotalDebt      decimal.Decimal `json:"total_debt"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Balance        decimal.Decimal `json:"balance"`
	OldestDebtDate *time.Time      `json:"oldest_debt_date,omitempty"`
}

// DebtSummary is the shop-wide rollup. TotalBalance is a straight
// TotalDebt - TotalPaid across the whole customer base, not a per-customer
// net summed up afterwards.
type DebtSummary struct {
	TotalCustomers    int64           `json:"total_customers"`
	CustomersWithDebt int64           `json:"customers_with_debt"`
	TotalDebt         decimal.Decimal `json:"total_debt"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
}

// DebtReport is the dashboard payload: the summary plus the customer
// balance list in one response.
type DebtReport struct {
	Summary *DebtSummary       `json:"summary"`
	List    []*CustomerBalance `json:"list"`
}
