package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/optica/backend/internal/domain/shared/mask"
)

// Tax ID validation errors
var (
	ErrTaxIDLength      = errors.New("cpf must have 11 digits")
	ErrTaxIDRepeated    = errors.New("cpf cannot repeat a single digit")
	ErrTaxIDCheckDigits = errors.New("cpf check digits do not match")
)

// TaxID is an individual taxpayer registry number (CPF).
// The zero value is an absent tax ID.
type TaxID struct {
	digits string
}

// NewTaxID parses a CPF with or without its mask and verifies the check digits
func NewTaxID(s string) (TaxID, error) {
	digits := mask.Unmask(s)
	if err := validateCPF(digits); err != nil {
		return TaxID{}, err
	}
	return TaxID{digits: digits}, nil
}

// MustNewTaxID creates a TaxID, panics on error
func MustNewTaxID(s string) TaxID {
	id, err := NewTaxID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// RestoreTaxID rebuilds a TaxID from stored digits without re-checking them
func RestoreTaxID(digits string) TaxID {
	return TaxID{digits: mask.Unmask(digits)}
}

// IsValidCPF reports whether s holds a CPF with valid check digits
func IsValidCPF(s string) bool {
	return validateCPF(mask.Unmask(s)) == nil
}

// Digits returns the 11 digits
func (t TaxID) Digits() string {
	return t.digits
}

// Masked returns ###.###.###-##
func (t TaxID) Masked() string {
	return mask.FormatCPF(t.digits)
}

// IsEmpty returns true for the zero value
func (t TaxID) IsEmpty() bool {
	return t.digits == ""
}

// Equals returns true if both tax IDs are equal
func (t TaxID) Equals(other TaxID) bool {
	return t.digits == other.digits
}

// String returns the masked form
func (t TaxID) String() string {
	return t.Masked()
}

// MarshalJSON implements json.Marshaler
func (t TaxID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.digits)
}

// UnmarshalJSON implements json.Unmarshaler
func (t *TaxID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = TaxID{}
		return nil
	}
	id, err := NewTaxID(s)
	if err != nil {
		return err
	}
	*t = id
	return nil
}

// Value implements driver.Valuer; an empty tax ID is stored as NULL
func (t TaxID) Value() (driver.Value, error) {
	if t.IsEmpty() {
		return nil, nil
	}
	return t.digits, nil
}

// Scan implements sql.Scanner
func (t *TaxID) Scan(value any) error {
	var s string
	switch v := value.(type) {
	case nil:
		*t = TaxID{}
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TaxID", value)
	}
	if s == "" {
		*t = TaxID{}
		return nil
	}
	id, err := NewTaxID(s)
	if err != nil {
		return err
	}
	*t = id
	return nil
}

func validateCPF(digits string) error {
	if len(digits) != mask.KindTaxID.MaxDigits() {
		return ErrTaxIDLength
	}

	repeated := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return ErrTaxIDRepeated
	}

	if checkDigit(digits[:9]) != digits[9] || checkDigit(digits[:10]) != digits[10] {
		return ErrTaxIDCheckDigits
	}
	return nil
}

// checkDigit computes the mod-11 verifier for the given prefix
func checkDigit(prefix string) byte {
	weight := len(prefix) + 1
	sum := 0
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (weight - i)
	}
	r := sum * 10 % 11
	if r == 10 {
		r = 0
	}
	return byte('0' + r)
}
