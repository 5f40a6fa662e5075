package partner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/optica/backend/internal/domain/partner"
	"github.com/optica/backend/internal/domain/shared"
	"github.com/optica/backend/internal/domain/shared/mask"
	"github.com/optica/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// AddressLookup resolves a postal code to an address, nil when it does not resolve
type AddressLookup interface {
	Lookup(ctx context.Context, code string) *valueobject.Address
}

// CustomerService handles customer registration and maintenance
type CustomerService struct {
	customerRepo partner.CustomerRepository
	lookup       AddressLookup
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// CustomerServiceOption configures a CustomerService
type CustomerServiceOption func(*CustomerService)

// WithAddressLookup enables address completion from the postal code
func WithAddressLookup(lookup AddressLookup) CustomerServiceOption {
	return func(s *CustomerService) {
		s.lookup = lookup
	}
}

// WithEventPublisher publishes domain events after each successful write
func WithEventPublisher(publisher shared.EventPublisher) CustomerServiceOption {
	return func(s *CustomerService) {
		s.publisher = publisher
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) CustomerServiceOption {
	return func(s *CustomerService) {
		s.logger = logger
	}
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, opts ...CustomerServiceOption) *CustomerService {
	s := &CustomerService{
		customerRepo: customerRepo,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	taxID, err := valueobject.NewTaxID(req.TaxID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "Invalid CPF: "+err.Error())
	}

	exists, err := s.customerRepo.ExistsByTaxID(ctx, taxID.Digits())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this CPF already exists")
	}

	customer, err := partner.NewCustomer(req.Name, taxID)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" || req.Email != "" {
		if err := customer.SetContact(req.Phone, req.Email); err != nil {
			return nil, err
		}
	}

	if !req.Address.IsEmpty() {
		address, err := s.buildAddress(ctx, req.Address)
		if err != nil {
			return nil, err
		}
		customer.SetAddress(address)
	}

	if req.BirthDate != "" {
		if err := setBirthDate(customer, req.BirthDate); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		if err := customer.SetNotes(req.Notes); err != nil {
			return nil, err
		}
	}

	// Setters bump the version; a new row always starts at the first one
	customer.Version = 1

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, customer)

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByTaxID retrieves a customer by CPF, masked or not
func (s *CustomerService) GetByTaxID(ctx context.Context, taxID string) (*CustomerResponse, error) {
	if !mask.IsComplete(mask.KindTaxID, taxID) {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "CPF must have 11 digits")
	}
	customer, err := s.customerRepo.FindByTaxID(ctx, mask.Unmask(taxID))
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List retrieves a page of customers and the total matching the filter
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerListResponse, int64, error) {
	domainFilter := partner.CustomerFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   strings.TrimSpace(filter.Search),
		},
		Status: partner.CustomerStatus(filter.Status),
		City:   strings.TrimSpace(filter.City),
		State:  strings.TrimSpace(filter.State),
	}
	if domainFilter.Page < 1 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize < 1 {
		domainFilter.PageSize = shared.DefaultFilter().PageSize
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerListResponses(customers), total, nil
}

// UpdateContact applies the fields present in req
func (s *CustomerService) UpdateContact(ctx context.Context, customerID uuid.UUID, req UpdateContactRequest) (*CustomerResponse, error) {
	return s.modify(ctx, customerID, func(customer *partner.Customer) error {
		if req.Name != nil {
			if err := customer.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Phone != nil || req.Email != nil {
			phone, email := customer.Phone, customer.Email
			if req.Phone != nil {
				phone = *req.Phone
			}
			if req.Email != nil {
				email = *req.Email
			}
			if err := customer.SetContact(phone, email); err != nil {
				return err
			}
		}
		if req.BirthDate != nil {
			if *req.BirthDate == "" {
				if err := customer.SetBirthDate(nil); err != nil {
					return err
				}
			} else if err := setBirthDate(customer, *req.BirthDate); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			return customer.SetNotes(*req.Notes)
		}
		return nil
	})
}

// UpdateAddress replaces the customer's address, completing it from the postal code
func (s *CustomerService) UpdateAddress(ctx context.Context, customerID uuid.UUID, req AddressInput) (*CustomerResponse, error) {
	return s.modify(ctx, customerID, func(customer *partner.Customer) error {
		if req.IsEmpty() {
			customer.SetAddress(valueobject.EmptyAddress())
			return nil
		}
		address, err := s.buildAddress(ctx, req)
		if err != nil {
			return err
		}
		customer.SetAddress(address)
		return nil
	})
}

// Activate activates a customer
func (s *CustomerService) Activate(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	return s.modify(ctx, customerID, func(customer *partner.Customer) error {
		return customer.Activate()
	})
}

// Deactivate deactivates a customer
func (s *CustomerService) Deactivate(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	return s.modify(ctx, customerID, func(customer *partner.Customer) error {
		return customer.Deactivate()
	})
}

// Delete deletes a customer
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		return err
	}

	customer.AddDomainEvent(partner.NewCustomerDeletedEvent(customer))
	s.publishEvents(ctx, customer)
	return nil
}

// modify loads a customer, applies fn and saves with a version check
func (s *CustomerService) modify(ctx context.Context, customerID uuid.UUID, fn func(*partner.Customer) error) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	loaded := customer.Version
	if err := fn(customer); err != nil {
		return nil, err
	}

	if customer.Version != loaded {
		// SaveWithLock expects exactly one bump over the loaded version
		customer.Version = loaded + 1
		if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, customer)
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// buildAddress validates the input, filling blanks from the postal code
func (s *CustomerService) buildAddress(ctx context.Context, in AddressInput) (valueobject.Address, error) {
	postalCode := mask.Unmask(in.PostalCode)
	if postalCode != "" && !mask.IsComplete(mask.KindPostalCode, postalCode) {
		return valueobject.Address{}, shared.NewDomainError("INVALID_POSTAL_CODE", "CEP must have 8 digits")
	}

	street, neighborhood, city, state := in.Street, in.Neighborhood, in.City, in.State
	complement := in.Complement
	if postalCode != "" && s.lookup != nil && (street == "" || neighborhood == "" || city == "" || state == "") {
		if found := s.lookup.Lookup(ctx, postalCode); found != nil {
			street = firstNonEmpty(street, found.Street())
			neighborhood = firstNonEmpty(neighborhood, found.Neighborhood())
			city = firstNonEmpty(city, found.City())
			state = firstNonEmpty(state, found.State())
			complement = firstNonEmpty(complement, found.Complement())
		} else {
			s.logger.Debug("postal code did not resolve, keeping typed address",
				zap.String("postal_code", postalCode))
		}
	}

	address, err := valueobject.NewAddress(street, neighborhood, city, state,
		valueobject.WithNumber(in.Number),
		valueobject.WithComplement(complement),
		valueobject.WithPostalCode(postalCode),
	)
	if err != nil {
		return valueobject.Address{}, shared.NewDomainError("INVALID_ADDRESS", "Invalid address: "+err.Error())
	}
	return address, nil
}

// publishEvents hands pending events to the publisher. Publishing failures are
// logged; the write has already happened.
func (s *CustomerService) publishEvents(ctx context.Context, customer *partner.Customer) {
	events := customer.GetDomainEvents()
	customer.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish customer events",
			zap.String("customer_id", customer.ID.String()),
			zap.Error(err),
		)
	}
}

func setBirthDate(customer *partner.Customer, value string) error {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date must be YYYY-MM-DD")
	}
	return customer.SetBirthDate(&date)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
