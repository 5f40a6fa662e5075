package partner

import (
	"github.com/google/uuid"
	"github.com/optica/backend/internal/domain/shared"
	"github.com/optica/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerRegistered     = "CustomerRegistered"
	EventTypeCustomerUpdated        = "CustomerUpdated"
	EventTypeCustomerAddressChanged = "CustomerAddressChanged"
	EventTypeCustomerStatusChanged  = "CustomerStatusChanged"
	EventTypeCustomerDeleted        = "CustomerDeleted"
)

// CustomerRegisteredEvent is published when a new customer is registered
type CustomerRegisteredEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	TaxID      string    `json:"tax_id"`
}

// NewCustomerRegisteredEvent creates a new CustomerRegisteredEvent
func NewCustomerRegisteredEvent(customer *Customer) *CustomerRegisteredEvent {
	return &CustomerRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerRegistered, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		TaxID:           customer.TaxID.Digits(),
	}
}

// CustomerUpdatedEvent is published when name or contact details change
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		Phone:           customer.Phone,
		Email:           customer.Email,
	}
}

// CustomerAddressChangedEvent is published when the address is replaced
type CustomerAddressChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID           `json:"customer_id"`
	Address    valueobject.Address `json:"address"`
}

// NewCustomerAddressChangedEvent creates a new CustomerAddressChangedEvent
func NewCustomerAddressChangedEvent(customer *Customer) *CustomerAddressChangedEvent {
	return &CustomerAddressChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerAddressChanged, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Address:         customer.Address,
	}
}

// CustomerStatusChangedEvent is published when a customer is activated or deactivated
type CustomerStatusChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID      `json:"customer_id"`
	OldStatus  CustomerStatus `json:"old_status"`
	NewStatus  CustomerStatus `json:"new_status"`
}

// NewCustomerStatusChangedEvent creates a new CustomerStatusChangedEvent
func NewCustomerStatusChangedEvent(customer *Customer, oldStatus CustomerStatus) *CustomerStatusChangedEvent {
	return &CustomerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerStatusChanged, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		OldStatus:       oldStatus,
		NewStatus:       customer.Status,
	}
}

// CustomerDeletedEvent is published when a customer is removed
type CustomerDeletedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	TaxID      string    `json:"tax_id"`
}

// NewCustomerDeletedEvent creates a new CustomerDeletedEvent
func NewCustomerDeletedEvent(customer *Customer) *CustomerDeletedEvent {
	return &CustomerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDeleted, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		TaxID:           customer.TaxID.Digits(),
	}
}
