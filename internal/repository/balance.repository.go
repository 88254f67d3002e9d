package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tdnguyen/debt-ledger/internal/model"
	"github.com/tdnguyen/debt-ledger/pkg/pg"
	"gorm.io/gorm"
)

// BalanceRepository computes the derived read paths: per-customer totals,
// the shop-wide summary and the oldest live debt date. Everything is
// computed fresh from live rows on every call; nothing is cached or
// incrementally maintained, so soft-deletes and edits can never drift.
type BalanceRepository struct {
	*pg.DB
}

func NewBalanceRepository(db *pg.DB) *BalanceRepository {
	return &BalanceRepository{
		db,
	}
}

type balanceTotalsRow struct {
	TotalDebt decimal.Decimal `gorm:"column:total_debt"`
	TotalPaid decimal.Decimal `gorm:"column:total_paid"`
}

type customerBalanceRow struct {
	ID             int64           `gorm:"column:id"`
	Name           string          `gorm:"column:name"`
	Phone          *string         `gorm:"column:phone"`
	Notes          *string         `gorm:"column:notes"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
	TotalDebt      decimal.Decimal `gorm:"column:total_debt"`
	TotalPaid      decimal.Decimal `gorm:"column:total_paid"`
	OldestDebtDate *string         `gorm:"column:oldest_debt_date"` // aggregate exprs come back untyped, parsed below
}

func (r *BalanceRepository) BalanceOf(ctx context.Context, customerID int64) (*model.CustomerBalance, error) {
	var customer CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", customerID).
		First(&customer).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	var row balanceTotalsRow
	err = r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Select(`
            COALESCE(SUM(CASE WHEN kind = 'debit'  AND deleted = ? THEN amount ELSE 0 END), 0) AS total_debt,
            COALESCE(SUM(CASE WHEN kind = 'credit' AND deleted = ? THEN amount ELSE 0 END), 0) AS total_paid
        `, false, false).
		Where("customer_id = ?", customerID).
		Scan(&row).
		Error
	if err != nil {
		return nil, err
	}

	oldest, err := r.OldestLiveDebtDate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &model.CustomerBalance{
		Customer:       *toCustomerModel(&customer),
		TotalDebt:      row.TotalDebt,
		TotalPaid:      row.TotalPaid,
		Balance:        row.TotalDebt.Sub(row.TotalPaid),
		OldestDebtDate: oldest,
	}, nil
}

// BalancesFor is the primary customer-list-with-balance read path: the
// registry's search/order/pagination contract joined with per-customer
// totals in a single grouped query, never one query per customer.
func (r *BalanceRepository) BalancesFor(ctx context.Context, f model.CustomerFilter) ([]*model.CustomerBalance, int64, error) {
	countQuery := r.Read(ctx).WithContext(ctx).Model(&CustomerEntity{})
	countQuery = applySearch(countQuery, f.Search)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := pageWindow(f.Page, f.Limit)

	q := r.Read(ctx).WithContext(ctx).
		Table("customers AS c").
		Select(`
            c.id         AS id,
            c.name       AS name,
            c.phone      AS phone,
            c.notes      AS notes,
            c.created_at AS created_at,
            c.updated_at AS updated_at,
            COALESCE(SUM(CASE WHEN t.kind = 'debit'  AND t.deleted = ? THEN t.amount ELSE 0 END), 0) AS total_debt,
            COALESCE(SUM(CASE WHEN t.kind = 'credit' AND t.deleted = ? THEN t.amount ELSE 0 END), 0) AS total_paid,
            MIN(CASE WHEN t.kind = 'debit' AND t.deleted = ? THEN t.transaction_date END)            AS oldest_debt_date
        `, false, false, false).
		Joins("LEFT JOIN transactions AS t ON t.customer_id = c.id")

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("LOWER(c.name) LIKE LOWER(?) OR LOWER(COALESCE(c.phone, '')) LIKE LOWER(?)", pattern, pattern)
	}

	var rows []*customerBalanceRow
	err := q.Group("c.id, c.name, c.phone, c.notes, c.created_at, c.updated_at").
		Order("c.name ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}

	balances := make([]*model.CustomerBalance, len(rows))
	for i, row := range rows {
		balances[i] = toCustomerBalance(row)
	}
	return balances, total, nil
}

// OldestLiveDebtDate returns the minimum transaction_date among live debit
// entries, or nil when the customer has none.
func (r *BalanceRepository) OldestLiveDebtDate(ctx context.Context, customerID int64) (*time.Time, error) {
	var raw *string
	err := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Select("MIN(transaction_date)").
		Where("customer_id = ? AND kind = ? AND deleted = ?", customerID, "debit", false).
		Scan(&raw).
		Error
	if err != nil {
		return nil, err
	}
	return parseAggregateDate(raw), nil
}

type summaryRow struct {
	TotalCustomers    int64           `gorm:"column:total_customers"`
	CustomersWithDebt int64           `gorm:"column:customers_with_debt"`
	TotalDebt         decimal.Decimal `gorm:"column:total_debt"`
	TotalPaid         decimal.Decimal `gorm:"column:total_paid"`
}

// Summary rolls up every customer's totals. customers_with_debt counts
// strictly positive balances only; a customer in credit or at zero still
// has history but does not count.
func (r *BalanceRepository) Summary(ctx context.Context) (*model.DebtSummary, error) {
	const query = `
        SELECT
            COUNT(*)                                                                 AS total_customers,
            COALESCE(SUM(CASE WHEN b.total_debt - b.total_paid > 0 THEN 1 ELSE 0 END), 0) AS customers_with_debt,
            COALESCE(SUM(b.total_debt), 0)                                           AS total_debt,
            COALESCE(SUM(b.total_paid), 0)                                           AS total_paid
        FROM (
            SELECT
                c.id,
                COALESCE(SUM(CASE WHEN t.kind = 'debit'  AND t.deleted = ? THEN t.amount ELSE 0 END), 0) AS total_debt,
                COALESCE(SUM(CASE WHEN t.kind = 'credit' AND t.deleted = ? THEN t.amount ELSE 0 END), 0) AS total_paid
            FROM customers c
            LEFT JOIN transactions t ON t.customer_id = c.id
            GROUP BY c.id
        ) b`

	var row summaryRow
	err := r.Read(ctx).WithContext(ctx).
		Raw(query, false, false).
		Scan(&row).
		Error
	if err != nil {
		return nil, err
	}

	return &model.DebtSummary{
		TotalCustomers:    row.TotalCustomers,
		CustomersWithDebt: row.CustomersWithDebt,
		TotalDebt:         row.TotalDebt,
		TotalPaid:         row.TotalPaid,
		TotalBalance:      row.TotalDebt.Sub(row.TotalPaid),
	}, nil
}

func toCustomerBalance(row *customerBalanceRow) *model.CustomerBalance {
	return &model.CustomerBalance{
		Customer: model.Customer{
			ID:        row.ID,
			Name:      row.Name,
			Phone:     row.Phone,
			Notes:     row.Notes,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		TotalDebt:      row.TotalDebt,
		TotalPaid:      row.TotalPaid,
		Balance:        row.TotalDebt.Sub(row.TotalPaid),
		OldestDebtDate: parseAggregateDate(row.OldestDebtDate),
	}
}

// aggregateDateLayouts covers what MIN(date) comes back as: postgres dates
// via database/sql render RFC3339, sqlite stores the driver's default
// timestamp text, and plain dates appear in migrations and fixtures.
var aggregateDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseAggregateDate(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	for _, layout := range aggregateDateLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t
		}
	}
	return nil
}
