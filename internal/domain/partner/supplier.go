package partner

import (
	"strings"

	"github.com/stockbook/backend/internal/domain/shared"
)

// Supplier is a party goods are purchased from.
// Referenced by id from purchase orders, never embedded.
type Supplier struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(255);not null"`
	TaxIdentity TaxIdentity `gorm:"embedded"`
	Phone       string `gorm:"type:varchar(32)"`
	Email       string `gorm:"type:varchar(255)"`
	Address     string `gorm:"type:text"`
}

// TableName returns the database table name
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with validation
func NewSupplier(name, gstin, pan, stateCode string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	identity, err := NewTaxIdentity(gstin, pan, stateCode)
	if err != nil {
		return nil, err
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxIdentity:       identity,
	}, nil
}

// UpdateContact replaces the contact details
func (s *Supplier) UpdateContact(phone, email, address string) {
	s.Phone = strings.TrimSpace(phone)
	s.Email = strings.TrimSpace(email)
	s.Address = strings.TrimSpace(address)
	s.Touch()
	s.IncrementVersion()
}

// UpdateTaxIdentity replaces the statutory identifiers
func (s *Supplier) UpdateTaxIdentity(gstin, pan, stateCode string) error {
	identity, err := NewTaxIdentity(gstin, pan, stateCode)
	if err != nil {
		return err
	}
	s.TaxIdentity = identity
	s.Touch()
	s.IncrementVersion()
	return nil
}
