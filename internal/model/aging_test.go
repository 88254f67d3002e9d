package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDebt(t *testing.T) {
	today := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	daysAgo := func(n int) *time.Time {
		d := today.AddDate(0, 0, -n)
		return &d
	}

	t.Run("zero balance is no debt regardless of date", func(t *testing.T) {
		st := ClassifyDebt(decimal.Zero, daysAgo(90), today)
		assert.Equal(t, DebtStateNone, st.State)
	})

	t.Run("negative balance is credit", func(t *testing.T) {
		st := ClassifyDebt(decimal.NewFromInt(-50000), daysAgo(5), today)
		assert.Equal(t, DebtStateCredit, st.State)
	})

	t.Run("positive balance with unknown date is current", func(t *testing.T) {
		st := ClassifyDebt(decimal.NewFromInt(150000), nil, today)
		assert.Equal(t, DebtStateCurrent, st.State)
	})

	t.Run("positive balance within threshold is current", func(t *testing.T) {
		st := ClassifyDebt(decimal.NewFromInt(150000), daysAgo(30), today)
		assert.Equal(t, DebtStateCurrent, st.State)
		assert.Equal(t, 30, st.AgeInDays)
	})

	t.Run("positive balance past threshold is overdue with age", func(t *testing.T) {
		st := ClassifyDebt(decimal.NewFromInt(150000), daysAgo(31), today)
		assert.Equal(t, DebtStateOverdue, st.State)
		assert.Equal(t, 31, st.AgeInDays)
	})

	t.Run("fractional days truncate down", func(t *testing.T) {
		// 30 days and 20 hours ago still counts as 30 whole days
		d := today.Add(-30*24*time.Hour - 20*time.Hour)
		st := ClassifyDebt(decimal.NewFromInt(10000), &d, today)
		assert.Equal(t, DebtStateCurrent, st.State)
	})

	t.Run("deterministic for a fixed today", func(t *testing.T) {
		a := ClassifyDebt(decimal.NewFromInt(500000), daysAgo(40), today)
		b := ClassifyDebt(decimal.NewFromInt(500000), daysAgo(40), today)
		assert.Equal(t, a, b)
		assert.Equal(t, DebtStateOverdue, a.State)
		assert.Equal(t, 40, a.AgeInDays)
	})
}

func TestDebtStatus_String(t *testing.T) {
	assert.Equal(t, "overdue(31)", DebtStatus{State: DebtStateOverdue, AgeInDays: 31}.String())
	assert.Equal(t, "no_debt", DebtStatus{State: DebtStateNone}.String())
}
