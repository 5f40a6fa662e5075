package partner

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/optica/backend/internal/domain/shared"
	"github.com/optica/backend/internal/domain/shared/mask"
	"github.com/optica/backend/internal/domain/shared/valueobject"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// IsValid reports whether s is a known status
func (s CustomerStatus) IsValid() bool {
	return s == CustomerStatusActive || s == CustomerStatusInactive
}

const (
	maxNameLength  = 200
	maxEmailLength = 200
	maxNotesLength = 2000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer is a registered client of the store.
// It is the aggregate root for customer registration
type Customer struct {
	shared.BaseAggregateRoot
	Name      string
	TaxID     valueobject.TaxID
	Phone     string // digits only
	Email     string
	Address   valueobject.Address
	BirthDate *time.Time
	Notes     string
	Status    CustomerStatus
}

// NewCustomer creates a new active customer.
// The tax ID is required and must already be a valid CPF
func NewCustomer(name string, taxID valueobject.TaxID) (*Customer, error) {
	name = strings.TrimSpace(name)
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if taxID.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "CPF is required")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             taxID,
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerRegisteredEvent(customer))

	return customer, nil
}

// Rename changes the customer's name
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if name == c.Name {
		return nil
	}

	c.Name = name
	c.touch()
	c.AddDomainEvent(NewCustomerUpdatedEvent(c))
	return nil
}

// SetContact sets the phone and email. The phone may be masked;
// only its digits are kept. Empty values clear the field.
func (c *Customer) SetContact(phone, email string) error {
	phone = mask.Unmask(phone)
	email = strings.TrimSpace(email)

	if phone != "" && !mask.IsComplete(mask.KindPhone, phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone must have 10 or 11 digits including the area code")
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if phone == c.Phone && email == c.Email {
		return nil
	}

	c.Phone = phone
	c.Email = email
	c.touch()
	c.AddDomainEvent(NewCustomerUpdatedEvent(c))
	return nil
}

// SetAddress replaces the customer's address
func (c *Customer) SetAddress(address valueobject.Address) {
	if c.Address.Equals(address) {
		return
	}
	c.Address = address
	c.touch()
	c.AddDomainEvent(NewCustomerAddressChangedEvent(c))
}

// SetBirthDate sets the date of birth. A nil date clears it
func (c *Customer) SetBirthDate(date *time.Time) error {
	if date == nil {
		c.BirthDate = nil
		c.touch()
		return nil
	}
	if date.After(time.Now()) {
		return shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date cannot be in the future")
	}

	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	c.BirthDate = &d
	c.touch()
	return nil
}

// SetNotes sets free-form notes
func (c *Customer) SetNotes(notes string) error {
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 2000 characters")
	}
	c.Notes = notes
	c.touch()
	return nil
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}
	c.Status = CustomerStatusActive
	c.touch()
	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, CustomerStatusInactive))
	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}
	c.Status = CustomerStatusInactive
	c.touch()
	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, CustomerStatusActive))
	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// FormattedPhone returns the phone with the (##) #####-#### mask
func (c *Customer) FormattedPhone() string {
	return mask.FormatPhone(c.Phone)
}

// FormattedTaxID returns the CPF with the ###.###.###-## mask
func (c *Customer) FormattedTaxID() string {
	return c.TaxID.Masked()
}

func (c *Customer) touch() {
	c.Touch()
	c.IncrementVersion()
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > maxEmailLength {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
