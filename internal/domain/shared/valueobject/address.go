package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/optica/backend/internal/domain/shared/mask"
)

// Address is a value object representing a Brazilian street address.
// It is immutable - all operations return new Address instances.
// Fields: Street (logradouro), Number, Complement, Neighborhood (bairro),
// City (localidade), State (UF), PostalCode (CEP digits)
type Address struct {
	street       string
	number       string
	complement   string
	neighborhood string
	city         string
	state        string
	postalCode   string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithNumber sets the building number
func WithNumber(number string) AddressOption {
	return func(a *Address) {
		a.number = strings.TrimSpace(number)
	}
}

// WithComplement sets the complement (apartment, block, reference)
func WithComplement(complement string) AddressOption {
	return func(a *Address) {
		a.complement = strings.TrimSpace(complement)
	}
}

// WithPostalCode sets the postal code; any mask characters are dropped
func WithPostalCode(postalCode string) AddressOption {
	return func(a *Address) {
		a.postalCode = mask.Unmask(postalCode)
	}
}

// NewAddress creates a new Address.
// City and state are required; street and neighborhood may be empty for
// postal codes that cover a whole city.
func NewAddress(street, neighborhood, city, state string, opts ...AddressOption) (Address, error) {
	addr := Address{
		street:       strings.TrimSpace(street),
		neighborhood: strings.TrimSpace(neighborhood),
		city:         strings.TrimSpace(city),
		state:        strings.ToUpper(strings.TrimSpace(state)),
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if err := addr.validate(); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(street, neighborhood, city, state string, opts ...AddressOption) Address {
	addr, err := NewAddress(street, neighborhood, city, state, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// RestoreAddress rebuilds an Address from stored columns without validation
func RestoreAddress(street, number, complement, neighborhood, city, state, postalCode string) Address {
	return Address{
		street:       street,
		number:       number,
		complement:   complement,
		neighborhood: neighborhood,
		city:         city,
		state:        state,
		postalCode:   postalCode,
	}
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Street returns the street name
func (a Address) Street() string {
	return a.street
}

// Number returns the building number
func (a Address) Number() string {
	return a.number
}

// Complement returns the complement
func (a Address) Complement() string {
	return a.complement
}

// Neighborhood returns the neighborhood
func (a Address) Neighborhood() string {
	return a.neighborhood
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// State returns the two-letter state code
func (a Address) State() string {
	return a.state
}

// PostalCode returns the postal code digits
func (a Address) PostalCode() string {
	return a.postalCode
}

// FormattedPostalCode returns the postal code as #####-###
func (a Address) FormattedPostalCode() string {
	return mask.FormatCEP(a.postalCode)
}

// IsEmpty returns true if the address carries no location
func (a Address) IsEmpty() bool {
	return a.street == "" && a.neighborhood == "" && a.city == "" && a.state == "" && a.postalCode == ""
}

// FullAddress returns the address in the usual Brazilian order:
// Street, Number - Complement - Neighborhood, City - UF, CEP
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	line := a.street
	if a.number != "" {
		line = joinNonEmpty(", ", line, a.number)
	}

	parts := make([]string, 0, 4)
	if head := joinNonEmpty(" - ", line, a.complement, a.neighborhood); head != "" {
		parts = append(parts, head)
	}
	if region := joinNonEmpty(" - ", a.city, a.state); region != "" {
		parts = append(parts, region)
	}
	if a.postalCode != "" {
		parts = append(parts, a.FormattedPostalCode())
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

// SameCity returns true if both addresses are in the same city
func (a Address) SameCity(other Address) bool {
	return strings.EqualFold(a.city, other.city) && a.state == other.state
}

// WithUpdatedNumber returns a new Address with the building number replaced
func (a Address) WithUpdatedNumber(number string) (Address, error) {
	b := a
	WithNumber(number)(&b)
	return b, b.validate()
}

// WithUpdatedComplement returns a new Address with the complement replaced
func (a Address) WithUpdatedComplement(complement string) (Address, error) {
	b := a
	WithComplement(complement)(&b)
	return b, b.validate()
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	Street       string `json:"street"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:       a.street,
		Number:       a.number,
		Complement:   a.complement,
		Neighborhood: a.neighborhood,
		City:         a.city,
		State:        a.state,
		PostalCode:   a.postalCode,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// It delegates to NewAddress so validation rules always apply.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if v.Street == "" && v.Neighborhood == "" && v.City == "" && v.State == "" && v.PostalCode == "" {
		*a = EmptyAddress()
		return nil
	}

	addr, err := NewAddress(v.Street, v.Neighborhood, v.City, v.State,
		WithNumber(v.Number), WithComplement(v.Complement), WithPostalCode(v.PostalCode))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage as a JSON column
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}

func (a Address) validate() error {
	if a.city == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if len(a.city) > 100 {
		return fmt.Errorf("city cannot exceed 100 characters")
	}
	if !IsValidState(a.state) {
		return fmt.Errorf("invalid state %q", a.state)
	}
	if len(a.street) > 200 {
		return fmt.Errorf("street cannot exceed 200 characters")
	}
	if len(a.neighborhood) > 100 {
		return fmt.Errorf("neighborhood cannot exceed 100 characters")
	}
	if len(a.number) > 20 {
		return fmt.Errorf("number cannot exceed 20 characters")
	}
	if len(a.complement) > 200 {
		return fmt.Errorf("complement cannot exceed 200 characters")
	}
	if a.postalCode != "" && len(a.postalCode) != mask.KindPostalCode.MaxDigits() {
		return fmt.Errorf("postal code must have %d digits", mask.KindPostalCode.MaxDigits())
	}
	return nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// BrazilianStates lists the federative unit codes
var BrazilianStates = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO",
	"MA", "MT", "MS", "MG", "PA", "PB", "PR", "PE", "PI",
	"RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// IsValidState checks if s is a federative unit code
func IsValidState(s string) bool {
	for _, uf := range BrazilianStates {
		if uf == s {
			return true
		}
	}
	return false
}
