package repository

import (
	"context"
	"errors"

	"github.com/tdnguyen/debt-ledger/internal/model"
	"github.com/tdnguyen/debt-ledger/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicatePhone   = errors.New("phone number already in use")
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		// uniqueness is the storage layer's job so concurrent creates with
		// the same phone cannot race past an application-level check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePhone
		}
		return nil, err
	}

	return toCustomerModel(entity), nil
}

func (r *CustomerRepository) Update(ctx context.Context, id int64, p model.CustomerUpdateRequest) (*model.Customer, error) {
	var entity CustomerEntity

	err := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"name":  p.Name,
		"phone": p.Phone,
		"notes": p.Notes,
	}
	err = r.Write(ctx).WithContext(ctx).
		Model(&entity).
		Updates(updates).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePhone
		}
		return nil, err
	}

	entity.Name = p.Name
	entity.Phone = p.Phone
	entity.Notes = p.Notes
	return toCustomerModel(&entity), nil
}

// Delete hard-deletes the customer. The FK cascade removes every owned
// transaction, soft-deleted ones included. There is no recovery path.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&CustomerEntity{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var entity CustomerEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toCustomerModel(&entity), nil
}

func (r *CustomerRepository) Search(ctx context.Context, f model.CustomerFilter) ([]*model.Customer, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&CustomerEntity{})
	q = applySearch(q, f.Search)

	// Count before pagination
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := pageWindow(f.Page, f.Limit)

	var entities []*CustomerEntity
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toCustomerModels(entities), total, nil
}

// applySearch adds the case-insensitive substring match over name or phone.
// An empty term matches everything.
func applySearch(q *gorm.DB, term string) *gorm.DB {
	if term == "" {
		return q
	}
	pattern := "%" + term + "%"
	return q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(COALESCE(phone, '')) LIKE LOWER(?)", pattern, pattern)
}

const (
	defaultPageLimit = 50
	// maxPageLimit must admit the export snapshot, which fetches every
	// customer in one window.
	maxPageLimit = 10000
)

// pageWindow converts a 1-indexed page and page size into limit/offset.
func pageWindow(page, limit int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
