package postalcode

import (
	"encoding/json"
	"strings"

	"github.com/optica/backend/internal/domain/shared/valueobject"
)

// Status is the outcome of a lookup
type Status int

const (
	// StatusNotFound means the code is malformed or the service does not know it
	StatusNotFound Status = iota + 1
	// StatusFound means a complete address was returned
	StatusFound
	// StatusUnavailable means the service could not be reached or answered badly
	StatusUnavailable
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "not_found"
	case StatusFound:
		return "found"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result is the three-state outcome of Resolve.
// Address is set only for StatusFound. Err explains StatusUnavailable and
// malformed codes.
type Result struct {
	Status  Status
	Address *valueobject.Address
	Err     error
}

// Found reports whether an address was returned
func (r Result) Found() bool {
	return r.Status == StatusFound && r.Address != nil
}

// viaCEPResponse is the body of GET /ws/{cep}/json/
type viaCEPResponse struct {
	CEP         string   `json:"cep"`
	Logradouro  string   `json:"logradouro"`
	Complemento string   `json:"complemento"`
	Bairro      string   `json:"bairro"`
	Localidade  string   `json:"localidade"`
	UF          string   `json:"uf"`
	Erro        errorTag `json:"erro"`
}

// errorTag accepts both `true` and `"true"`
type errorTag bool

// UnmarshalJSON implements json.Unmarshaler
func (e *errorTag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*e = errorTag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = errorTag(strings.EqualFold(strings.TrimSpace(s), "true"))
	return nil
}
