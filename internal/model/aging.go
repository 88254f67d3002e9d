package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OverdueThresholdDays is the age at which an unpaid debt counts as overdue.
const OverdueThresholdDays = 30

// DebtStatus classifies a customer's standing given their balance and the
// date of their oldest live debt.
type DebtStatus struct {
	State     DebtState `json:"state"`
	AgeInDays int       `json:"age_in_days,omitempty"`
}

type DebtState string

const (
	DebtStateNone    DebtState = "no_debt" // balance is exactly zero
	DebtStateCredit  DebtState = "credit"  // customer overpaid
	DebtStateCurrent DebtState = "current" // owed, within the threshold
	DebtStateOverdue DebtState = "overdue"
)

func (s DebtStatus) String() string {
	if s.State == DebtStateOverdue {
		return fmt.Sprintf("%s(%d)", s.State, s.AgeInDays)
	}
	return string(s.State)
}

// ClassifyDebt is a pure function of its inputs; "today" is passed in so
// callers and tests fix the clock. Age is whole calendar days between the
// oldest live debt date and today, fractional days truncating down. An
// unknown oldest date with a positive balance classifies as current.
func ClassifyDebt(balance decimal.Decimal, oldestDebtDate *time.Time, today time.Time) DebtStatus {
	switch {
	case balance.IsZero():
		return DebtStatus{State: DebtStateNone}
	case balance.IsNegative():
		return DebtStatus{State: DebtStateCredit}
	}

	if oldestDebtDate == nil {
		return DebtStatus{State: DebtStateCurrent}
	}

	age := daysBetween(*oldestDebtDate, today)
	if age > OverdueThresholdDays {
		return DebtStatus{State: DebtStateOverdue, AgeInDays: age}
	}
	return DebtStatus{State: DebtStateCurrent, AgeInDays: age}
}

// daysBetween counts whole days from a to b on the calendar, ignoring the
// time-of-day components.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
