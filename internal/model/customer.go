package model

import (
	"errors"
	"strings"
	"time"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

// CustomerCreateRequest is the input for registering a customer.
type CustomerCreateRequest struct {
	Name  string
	Phone *string
	Notes *string
}

func (p *CustomerCreateRequest) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name is required")
	}
	trimOptional(&p.Phone)
	trimOptional(&p.Notes)
	return nil
}

// CustomerUpdateRequest carries the mutable customer fields.
type CustomerUpdateRequest struct {
	Name  string
	Phone *string
	Notes *string
}

func (p *CustomerUpdateRequest) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name is required")
	}
	trimOptional(&p.Phone)
	trimOptional(&p.Notes)
	return nil
}

// CustomerFilter controls Search queries. Page is 1-indexed.
type CustomerFilter struct {
	Search string // case-insensitive substring over name or phone
	Page   int
	Limit  int
}

// trimOptional trims the pointee and collapses empty strings to nil so
// blank form fields never occupy the unique phone index.
func trimOptional(s **string) {
	if *s == nil {
		return
	}
	v := strings.TrimSpace(**s)
	if v == "" {
		*s = nil
		return
	}
	*s = &v
}
