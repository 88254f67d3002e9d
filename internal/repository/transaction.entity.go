package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tdnguyen/debt-ledger/internal/model"
)

type TransactionEntity struct {
	ID              int64           `db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	CustomerID      int64           `db:"customer_id"      gorm:"column:customer_id;not null;index"`
	Customer        *CustomerEntity `db:"-"                gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE"`
	Kind            string          `db:"kind"             gorm:"column:kind;not null;index"`
	Amount          decimal.Decimal `db:"amount"           gorm:"column:amount;type:decimal(20,2);not null"`
	Description     *string         `db:"description"      gorm:"column:description"`
	TransactionDate time.Time       `db:"transaction_date" gorm:"column:transaction_date;type:date;not null;index"`
	CreatedAt       time.Time       `db:"created_at"       gorm:"column:created_at;autoCreateTime"`
	Deleted         bool            `db:"deleted"          gorm:"column:deleted;not null;default:false;index"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		Kind:            string(m.Kind),
		Amount:          m.Amount,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
		Deleted:         m.Deleted,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:              e.ID,
		CustomerID:      e.CustomerID,
		Kind:            model.TransactionKind(e.Kind),
		Amount:          e.Amount,
		Description:     e.Description,
		TransactionDate: e.TransactionDate,
		CreatedAt:       e.CreatedAt,
		Deleted:         e.Deleted,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
