package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionCreateRequest_Validate(t *testing.T) {
	valid := func() TransactionCreateRequest {
		return TransactionCreateRequest{
			CustomerID: 1,
			Kind:       KindDebit,
			Amount:     decimal.NewFromInt(1000000),
		}
	}

	t.Run("valid request", func(t *testing.T) {
		p := valid()
		require.NoError(t, p.Validate())
	})

	t.Run("missing customer", func(t *testing.T) {
		p := valid()
		p.CustomerID = 0
		assert.Error(t, p.Validate())
	})

	t.Run("invalid kind", func(t *testing.T) {
		p := valid()
		p.Kind = "transfer"
		assert.ErrorIs(t, p.Validate(), ErrInvalidKind)
	})

	t.Run("zero amount", func(t *testing.T) {
		p := valid()
		p.Amount = decimal.Zero
		assert.ErrorIs(t, p.Validate(), ErrInvalidAmount)
	})

	t.Run("negative amount", func(t *testing.T) {
		p := valid()
		p.Amount = decimal.NewFromInt(-500)
		assert.ErrorIs(t, p.Validate(), ErrInvalidAmount)
	})

	t.Run("blank description collapses to nil", func(t *testing.T) {
		p := valid()
		desc := "   "
		p.Description = &desc
		require.NoError(t, p.Validate())
		assert.Nil(t, p.Description)
	})
}

func TestTransactionUpdateRequest_Validate(t *testing.T) {
	t.Run("empty update rejected", func(t *testing.T) {
		p := TransactionUpdateRequest{}
		assert.Error(t, p.Validate())
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		amt := decimal.Zero
		p := TransactionUpdateRequest{Amount: &amt}
		assert.ErrorIs(t, p.Validate(), ErrInvalidAmount)
	})
}

func TestCustomerCreateRequest_Validate(t *testing.T) {
	t.Run("trims name", func(t *testing.T) {
		p := CustomerCreateRequest{Name: "  Nguyen A  "}
		require.NoError(t, p.Validate())
		assert.Equal(t, "Nguyen A", p.Name)
	})

	t.Run("whitespace-only name rejected", func(t *testing.T) {
		p := CustomerCreateRequest{Name: "   "}
		assert.Error(t, p.Validate())
	})

	t.Run("blank phone collapses to nil", func(t *testing.T) {
		phone := " "
		p := CustomerCreateRequest{Name: "A", Phone: &phone}
		require.NoError(t, p.Validate())
		assert.Nil(t, p.Phone)
	})
}

func TestFilterByKind(t *testing.T) {
	txns := []*Transaction{
		{ID: 1, Kind: KindDebit},
		{ID: 2, Kind: KindCredit},
		{ID: 3, Kind: KindDebit},
		{ID: 4, Kind: KindCredit},
	}

	t.Run("debit only, order preserved", func(t *testing.T) {
		got := FilterByKind(txns, KindDebit)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("credit only", func(t *testing.T) {
		got := FilterByKind(txns, KindCredit)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("invalid kind passes through", func(t *testing.T) {
		got := FilterByKind(txns, "")
		assert.Len(t, got, 4)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, FilterByKind(nil, KindDebit))
	})
}
