package repository

import (
	"context"
	"errors"

	"github.com/tdnguyen/debt-ledger/internal/model"
	"github.com/tdnguyen/debt-ledger/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(txn)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toTransactionModel(entity), nil
}

// Update mutates amount, description and transaction_date of a live entry.
// Kind and customer_id are immutable here; reassigning either is a
// delete-and-recreate operation.
func (r *TransactionRepository) Update(ctx context.Context, id int64, p model.TransactionUpdateRequest) (*model.Transaction, error) {
	var entity TransactionEntity

	err := r.Write(ctx).WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if p.Amount != nil {
		updates["amount"] = *p.Amount
		entity.Amount = *p.Amount
	}
	if p.Description != nil {
		// a blanked description clears to NULL, same as create's
		// blank-to-nil collapse
		if *p.Description == "" {
			updates["description"] = nil
			entity.Description = nil
		} else {
			updates["description"] = *p.Description
			entity.Description = p.Description
		}
	}
	if p.TransactionDate != nil {
		updates["transaction_date"] = *p.TransactionDate
		entity.TransactionDate = *p.TransactionDate
	}

	if err := r.Write(ctx).WithContext(ctx).Model(&entity).Updates(updates).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(&entity), nil
}

// SoftDelete marks the entry deleted. Repeat calls on an already-deleted
// id succeed with no state change; a missing id is NotFound.
func (r *TransactionRepository) SoftDelete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("id = ?", id).
		Update("deleted", true)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	var entity TransactionEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return toTransactionModel(&entity), nil
}

// List returns live entries newest first: transaction_date DESC with
// created_at DESC as the tiebreak, plus the total live count for
// pagination metadata.
func (r *TransactionRepository) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	q := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("deleted = ?", false)

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}

	// Count before pagination
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := pageWindow(f.Page, f.Limit)

	var entities []*TransactionEntity
	err := q.Order("transaction_date DESC").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entities).
		Error
	if err != nil {
		return nil, 0, err
	}

	return toTransactionModels(entities), total, nil
}
