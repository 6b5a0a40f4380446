package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/partner"
)

// CreateSupplierRequest carries a new supplier payload
type CreateSupplierRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	GSTIN     string `json:"gstin" binding:"max=15"`
	PAN       string `json:"pan" binding:"max=10"`
	StateCode string `json:"state_code" binding:"max=2"`
	Phone     string `json:"phone" binding:"max=20"`
	Email     string `json:"email" binding:"omitempty,email"`
	Address   string `json:"address" binding:"max=500"`
}

// CreateCustomerRequest carries a new customer payload
type CreateCustomerRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	GSTIN     string `json:"gstin" binding:"max=15"`
	PAN       string `json:"pan" binding:"max=10"`
	StateCode string `json:"state_code" binding:"max=2"`
	Phone     string `json:"phone" binding:"max=20"`
	Email     string `json:"email" binding:"omitempty,email"`
	Address   string `json:"address" binding:"max=500"`
}

// PartyResponse is the outward shape of a supplier or customer
type PartyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	GSTIN     string    `json:"gstin,omitempty"`
	PAN       string    `json:"pan,omitempty"`
	StateCode string    `json:"state_code,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSupplierResponse maps a supplier to the party response shape
func ToSupplierResponse(s *partner.Supplier) PartyResponse {
	return PartyResponse{
		ID:        s.ID,
		Name:      s.Name,
		GSTIN:     s.TaxIdentity.GSTIN,
		PAN:       s.TaxIdentity.PAN,
		StateCode: s.TaxIdentity.StateCode,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToCustomerResponse maps a customer to the party response shape
func ToCustomerResponse(c *partner.Customer) PartyResponse {
	return PartyResponse{
		ID:        c.ID,
		Name:      c.Name,
		GSTIN:     c.TaxIdentity.GSTIN,
		PAN:       c.TaxIdentity.PAN,
		StateCode: c.TaxIdentity.StateCode,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
