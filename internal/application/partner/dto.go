package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/optica/backend/internal/domain/partner"
	"github.com/optica/backend/internal/domain/shared/valueobject"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// AddressInput carries address fields as typed at the counter.
// Missing street, neighborhood, city or state are filled from the postal code.
type AddressInput struct {
	PostalCode   string `json:"postal_code" binding:"omitempty,cep"`
	Street       string `json:"street" binding:"max=200"`
	Number       string `json:"number" binding:"max=20"`
	Complement   string `json:"complement" binding:"max=200"`
	Neighborhood string `json:"neighborhood" binding:"max=100"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"omitempty,len=2"`
}

// IsEmpty reports whether no address field was sent
func (a AddressInput) IsEmpty() bool {
	return a == AddressInput{}
}

// CreateCustomerRequest represents a request to register a new customer
type CreateCustomerRequest struct {
	Name      string       `json:"name" binding:"required,min=1,max=200"`
	TaxID     string       `json:"tax_id" binding:"required,cpf"`
	Phone     string       `json:"phone" binding:"omitempty,phone_br"`
	Email     string       `json:"email" binding:"omitempty,email,max=200"`
	Address   AddressInput `json:"address"`
	BirthDate string       `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Notes     string       `json:"notes" binding:"max=2000"`
}

// UpdateContactRequest represents a partial update of a customer's contact data
type UpdateContactRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone     *string `json:"phone" binding:"omitempty,phone_br"`
	Email     *string `json:"email" binding:"omitempty,email,max=200"`
	BirthDate *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes" binding:"omitempty,max=2000"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	Street           string `json:"street"`
	Number           string `json:"number,omitempty"`
	Complement       string `json:"complement,omitempty"`
	Neighborhood     string `json:"neighborhood"`
	City             string `json:"city"`
	State            string `json:"state"`
	PostalCode       string `json:"postal_code"`
	PostalCodeMasked string `json:"postal_code_masked"`
	FullAddress      string `json:"full_address"`
}

// ToAddressResponse converts an address value object to its response; nil when empty
func ToAddressResponse(a valueobject.Address) *AddressResponse {
	if a.IsEmpty() {
		return nil
	}
	return &AddressResponse{
		Street:           a.Street(),
		Number:           a.Number(),
		Complement:       a.Complement(),
		Neighborhood:     a.Neighborhood(),
		City:             a.City(),
		State:            a.State(),
		PostalCode:       a.PostalCode(),
		PostalCodeMasked: a.FormattedPostalCode(),
		FullAddress:      a.FullAddress(),
	}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	TaxID       string           `json:"tax_id"`
	TaxIDMasked string           `json:"tax_id_masked"`
	Phone       string           `json:"phone,omitempty"`
	PhoneMasked string           `json:"phone_masked,omitempty"`
	Email       string           `json:"email,omitempty"`
	Address     *AddressResponse `json:"address,omitempty"`
	BirthDate   string           `json:"birth_date,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Status      string           `json:"status"`
	Version     int              `json:"version"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to its response
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		TaxID:       c.TaxID.Digits(),
		TaxIDMasked: c.FormattedTaxID(),
		Phone:       c.Phone,
		PhoneMasked: c.FormattedPhone(),
		Email:       c.Email,
		Address:     ToAddressResponse(c.Address),
		Notes:       c.Notes,
		Status:      string(c.Status),
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.BirthDate != nil {
		resp.BirthDate = c.BirthDate.Format(dateLayout)
	}
	return resp
}

// CustomerListResponse represents a list item for customers
type CustomerListResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TaxIDMasked string    `json:"tax_id_masked"`
	PhoneMasked string    `json:"phone_masked,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCustomerListResponses converts domain customers to list items
func ToCustomerListResponses(customers []partner.Customer) []CustomerListResponse {
	out := make([]CustomerListResponse, len(customers))
	for i := range customers {
		c := &customers[i]
		out[i] = CustomerListResponse{
			ID:          c.ID,
			Name:        c.Name,
			TaxIDMasked: c.FormattedTaxID(),
			PhoneMasked: c.FormattedPhone(),
			City:        c.Address.City(),
			State:       c.Address.State(),
			Status:      string(c.Status),
			CreatedAt:   c.CreatedAt,
		}
	}
	return out
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	City     string `form:"city"`
	State    string `form:"state" binding:"omitempty,len=2"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
