package partner

import (
	"strings"

	"github.com/stockbook/backend/internal/domain/shared"
)

// Customer is a party sales orders are billed to
type Customer struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(255);not null"`
	TaxIdentity TaxIdentity `gorm:"embedded"`
	Phone       string `gorm:"type:varchar(32)"`
	Email       string `gorm:"type:varchar(255)"`
	Address     string `gorm:"type:text"`
}

// TableName returns the database table name
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with validation
func NewCustomer(name, gstin, pan, stateCode string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	identity, err := NewTaxIdentity(gstin, pan, stateCode)
	if err != nil {
		return nil, err
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxIdentity:       identity,
	}, nil
}

// UpdateContact replaces the contact details
func (c *Customer) UpdateContact(phone, email, address string) {
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.TrimSpace(email)
	c.Address = strings.TrimSpace(address)
	c.Touch()
	c.IncrementVersion()
}

// UpdateTaxIdentity replaces the statutory identifiers
func (c *Customer) UpdateTaxIdentity(gstin, pan, stateCode string) error {
	identity, err := NewTaxIdentity(gstin, pan, stateCode)
	if err != nil {
		return err
	}
	c.TaxIdentity = identity
	c.Touch()
	c.IncrementVersion()
	return nil
}
