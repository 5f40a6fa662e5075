// Package mask formats Brazilian document numbers for display.
//
// Every formatter is pure and total: non-digit characters are stripped,
// excess digits are truncated, and separators are only written between
// digits, so a partially typed value always renders a valid prefix of the
// full pattern.
package mask

import (
	"fmt"
	"strings"
)

// Kind identifies a mask pattern
type Kind int

const (
	// KindTaxID formats an individual taxpayer number (CPF) as ###.###.###-##
	KindTaxID Kind = iota + 1
	// KindPhone formats landline (##) ####-#### and mobile (##) #####-#### numbers
	KindPhone
	// KindPostalCode formats a postal code (CEP) as #####-###
	KindPostalCode
)

// digitSlot marks a position in a layout that receives one digit
const digitSlot = '#'

// pattern is the formatting table for one Kind.
// layouts are ordered by capacity; the first one able to hold the digits wins.
type pattern struct {
	name    string
	label   string
	layouts []string
}

var patterns = [...]pattern{
	KindTaxID: {
		name:    "cpf",
		label:   "tax-id",
		layouts: []string{"###.###.###-##"},
	},
	KindPhone: {
		name:    "phone",
		label:   "phone",
		layouts: []string{"(##) ####-####", "(##) #####-####"},
	},
	KindPostalCode: {
		name:    "cep",
		label:   "postal-code",
		layouts: []string{"#####-###"},
	},
}

// Kinds returns all known mask kinds
func Kinds() []Kind {
	return []Kind{KindTaxID, KindPhone, KindPostalCode}
}

// ParseKind resolves a mask option value (cpf, phone, cep) or its label
func ParseKind(s string) (Kind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		p := patterns[k]
		if v == p.name || v == p.label {
			return k, nil
		}
	}
	switch v {
	case "taxid", "tax_id":
		return KindTaxID, nil
	case "postalcode", "postal_code", "zip":
		return KindPostalCode, nil
	}
	return 0, fmt.Errorf("unknown mask kind %q", s)
}

// IsValid reports whether k is one of the known kinds
func (k Kind) IsValid() bool {
	return k >= KindTaxID && k <= KindPostalCode
}

// String returns the mask option value (cpf, phone, cep)
func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return patterns[k].name
}

// Label returns a descriptive name for the kind
func (k Kind) Label() string {
	if !k.IsValid() {
		return ""
	}
	return patterns[k].label
}

// MaxDigits returns how many digits the kind accepts before truncating
func (k Kind) MaxDigits() int {
	if !k.IsValid() {
		return 0
	}
	layouts := patterns[k].layouts
	return slots(layouts[len(layouts)-1])
}

// MinDigits returns the smallest digit count that forms a complete value
func (k Kind) MinDigits() int {
	if !k.IsValid() {
		return 0
	}
	return slots(patterns[k].layouts[0])
}

// Placeholder returns the widest layout, useful as an input hint
func (k Kind) Placeholder() string {
	if !k.IsValid() {
		return ""
	}
	layouts := patterns[k].layouts
	return layouts[len(layouts)-1]
}

// layoutFor picks the layout used to render n digits
func (k Kind) layoutFor(n int) string {
	layouts := patterns[k].layouts
	for _, l := range layouts {
		if n <= slots(l) {
			return l
		}
	}
	return layouts[len(layouts)-1]
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid mask kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func slots(layout string) int {
	return strings.Count(layout, string(digitSlot))
}
