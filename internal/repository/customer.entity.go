package repository

import (
	"time"

	"github.com/tdnguyen/debt-ledger/internal/model"
)

type CustomerEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null;index"`
	Phone     *string   `db:"phone"      gorm:"column:phone;uniqueIndex"` // NULLs never conflict
	Notes     *string   `db:"notes"      gorm:"column:notes"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:        e.ID,
		Name:      e.Name,
		Phone:     e.Phone,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}
