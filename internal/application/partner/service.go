package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
)

// Service handles the party directory. Parties carry no stock logic;
// they are referenced by id from purchases and orders.
type Service struct {
	supplierRepo partner.SupplierRepository
	customerRepo partner.CustomerRepository
}

// NewService creates a new partner Service
func NewService(supplierRepo partner.SupplierRepository, customerRepo partner.CustomerRepository) *Service {
	return &Service{
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
	}
}

// CreateSupplier registers a new supplier
func (s *Service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*PartyResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.GSTIN, req.PAN, req.StateCode)
	if err != nil {
		return nil, err
	}
	supplier.UpdateContact(req.Phone, req.Email, req.Address)
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetSupplier retrieves a supplier
func (s *Service) GetSupplier(ctx context.Context, id uuid.UUID) (*PartyResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// ListSuppliers returns suppliers matching the filter
func (s *Service) ListSuppliers(ctx context.Context, filter shared.Filter) ([]PartyResponse, int64, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PartyResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses, total, nil
}

// CreateCustomer registers a new customer
func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*PartyResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.GSTIN, req.PAN, req.StateCode)
	if err != nil {
		return nil, err
	}
	customer.UpdateContact(req.Phone, req.Email, req.Address)
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetCustomer retrieves a customer
func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*PartyResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// ListCustomers returns customers matching the filter
func (s *Service) ListCustomers(ctx context.Context, filter shared.Filter) ([]PartyResponse, int64, error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PartyResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses, total, nil
}
