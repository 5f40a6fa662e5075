package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/optica/backend/internal/domain/shared"
)

// CustomerFilter narrows customer listings
type CustomerFilter struct {
	shared.Filter
	Status CustomerStatus
	City   string
	State  string
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID.
	// Returns shared.ErrNotFound when no customer exists
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByTaxID finds a customer by CPF digits
	FindByTaxID(ctx context.Context, taxID string) (*Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter CustomerFilter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter CustomerFilter) (int64, error)

	// ExistsByTaxID checks if a customer with the CPF exists
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// SaveWithLock saves a customer with optimistic locking (version check).
	// Returns shared.ErrConcurrentModification if the stored version moved on
	SaveWithLock(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error
}
