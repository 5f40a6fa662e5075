package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	partnerapp "github.com/optica/backend/internal/application/partner"
	"github.com/optica/backend/internal/domain/shared"
	"github.com/optica/backend/internal/domain/shared/valueobject"
	"github.com/optica/backend/internal/infrastructure/postalcode"
)

type resolverFunc func(ctx context.Context, code string) postalcode.Result

func (f resolverFunc) Resolve(ctx context.Context, code string) postalcode.Result {
	return f(ctx, code)
}

type stubCreator struct {
	got []partnerapp.CreateCustomerRequest
	err error
}

func (s *stubCreator) Create(_ context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	s.got = append(s.got, req)
	if s.err != nil {
		return nil, s.err
	}
	return &partnerapp.CustomerResponse{ID: uuid.New(), Name: req.Name, TaxIDMasked: "529.982.247-25"}, nil
}

func found() postalcode.Result {
	addr := valueobject.MustNewAddress("Praça da Sé", "Sé", "São Paulo", "SP",
		valueobject.WithPostalCode("01001000"), valueobject.WithComplement("lado ímpar"))
	return postalcode.Result{Status: postalcode.StatusFound, Address: &addr}
}

func update(t *testing.T, f RegisterForm, msg tea.Msg) (RegisterForm, tea.Cmd) {
	t.Helper()
	m, cmd := f.Update(msg)
	form, ok := m.(RegisterForm)
	require.True(t, ok)
	return form, cmd
}

func typeForm(t *testing.T, f RegisterForm, s string) RegisterForm {
	t.Helper()
	for _, r := range s {
		f, _ = update(t, f, runes(string(r)))
	}
	return f
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func focusField(t *testing.T, f RegisterForm, field int) RegisterForm {
	t.Helper()
	for f.focus != field {
		f, _ = update(t, f, key(tea.KeyTab))
	}
	return f
}

func TestRegisterForm_Navigation(t *testing.T) {
	f := NewRegisterForm(nil, nil)
	assert.NotNil(t, f.Init())
	assert.True(t, f.inputs[fieldName].Focused())

	f, _ = update(t, f, key(tea.KeyTab))
	assert.Equal(t, fieldTaxID, f.focus)
	assert.False(t, f.inputs[fieldName].Focused())
	assert.True(t, f.inputs[fieldTaxID].Focused())

	f, _ = update(t, f, key(tea.KeyEnter))
	assert.Equal(t, fieldPhone, f.focus)

	f, _ = update(t, f, key(tea.KeyShiftTab))
	f, _ = update(t, f, key(tea.KeyShiftTab))
	f, _ = update(t, f, key(tea.KeyShiftTab))
	assert.Equal(t, fieldState, f.focus, "wraps around")
}

func TestRegisterForm_MasksTypedValues(t *testing.T) {
	f := NewRegisterForm(nil, nil)
	f = typeForm(t, f, "Maria")
	f = focusField(t, f, fieldTaxID)
	f = typeForm(t, f, "52998224725")
	f = focusField(t, f, fieldPhone)
	f = typeForm(t, f, "11987654321")

	assert.Equal(t, "529.982.247-25", f.inputs[fieldTaxID].Display())
	assert.Equal(t, "(11) 98765-4321", f.inputs[fieldPhone].Display())

	req := f.Request()
	assert.Equal(t, "Maria", req.Name)
	assert.Equal(t, "52998224725", req.TaxID)
	assert.Equal(t, "11987654321", req.Phone)
}

func TestRegisterForm_PostalCodeLookup(t *testing.T) {
	var (
		calls       int
		hadDeadline bool
	)
	resolver := resolverFunc(func(ctx context.Context, code string) postalcode.Result {
		calls++
		_, hadDeadline = ctx.Deadline()
		assert.Equal(t, "01001000", code)
		return found()
	})

	f := NewRegisterForm(resolver, nil, WithRequestTimeout(time.Second))
	f = focusField(t, f, fieldCity)
	f = typeForm(t, f, "Osasco")
	f = focusField(t, f, fieldPostalCode)

	f = typeForm(t, f, "0100100")
	assert.False(t, f.lookingUp, "incomplete code does not trigger a lookup")

	f, cmd := update(t, f, runes("0"))
	require.NotNil(t, cmd)
	assert.True(t, f.lookingUp)
	assert.Equal(t, "01001000", f.looked)
	assert.Contains(t, f.View(), "Looking up postal code")

	msg := lookupCmd(resolver, f.looked, time.Second)()
	f, _ = update(t, f, msg)

	assert.Equal(t, 1, calls)
	assert.True(t, hadDeadline)
	assert.False(t, f.lookingUp)
	assert.Equal(t, "Praça da Sé", f.inputs[fieldStreet].Value())
	assert.Equal(t, "Sé", f.inputs[fieldNeighborhood].Value())
	assert.Equal(t, "SP", f.inputs[fieldState].Value())
	assert.Equal(t, "lado ímpar", f.inputs[fieldComplement].Value())
	assert.Equal(t, "Osasco", f.inputs[fieldCity].Value(), "typed values are kept")
	assert.Contains(t, f.View(), "Address found")

	// editing a character that keeps the code unchanged does not look up again
	f, _ = update(t, f, runes("9"))
	assert.False(t, f.lookingUp)
}

func TestRegisterForm_StaleLookupIgnored(t *testing.T) {
	f := NewRegisterForm(resolverFunc(func(context.Context, string) postalcode.Result {
		return found()
	}), nil)
	f = focusField(t, f, fieldPostalCode)
	f = typeForm(t, f, "01001000")
	f, _ = update(t, f, key(tea.KeyBackspace))

	f, _ = update(t, f, lookupMsg{code: "01001000", result: found()})

	assert.Empty(t, f.inputs[fieldStreet].Value())
	assert.False(t, f.lookingUp)
}

func TestRegisterForm_LookupFailures(t *testing.T) {
	tests := []struct {
		name   string
		result postalcode.Result
		want   string
	}{
		{"not found", postalcode.Result{Status: postalcode.StatusNotFound}, "Postal code not found"},
		{"unavailable", postalcode.Result{Status: postalcode.StatusUnavailable, Err: postalcode.ErrServiceUnavailable}, "fill in the address manually"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewRegisterForm(resolverFunc(func(context.Context, string) postalcode.Result {
				return tt.result
			}), nil)
			f = focusField(t, f, fieldPostalCode)
			f = typeForm(t, f, "99999999")

			f, _ = update(t, f, lookupMsg{code: "99999999", result: tt.result})

			assert.Contains(t, f.View(), tt.want)
			assert.Empty(t, f.inputs[fieldStreet].Value())
		})
	}
}

func TestRegisterForm_Submit(t *testing.T) {
	creator := &stubCreator{}
	f := NewRegisterForm(nil, creator)
	f = typeForm(t, f, "Maria")
	f = focusField(t, f, fieldTaxID)
	f = typeForm(t, f, "5299822472")

	f, cmd := update(t, f, key(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	assert.Contains(t, f.View(), "CPF must have 11 digits")

	f = typeForm(t, f, "5")
	f = focusField(t, f, fieldState)
	f = typeForm(t, f, "sp")

	f, cmd = update(t, f, key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Contains(t, f.View(), "Saving")

	f, _ = update(t, f, cmd())

	require.Len(t, creator.got, 1)
	assert.Equal(t, "52998224725", creator.got[0].TaxID)
	assert.Equal(t, "SP", creator.got[0].Address.State)
	require.NotNil(t, f.Created())
	assert.Contains(t, f.View(), "Registered Maria (529.982.247-25)")

	// enter starts a blank form
	f, _ = update(t, f, key(tea.KeyEnter))
	assert.Nil(t, f.Created())
	assert.Empty(t, f.inputs[fieldName].Value())
}

func TestRegisterForm_SubmitError(t *testing.T) {
	creator := &stubCreator{err: shared.NewDomainError("ALREADY_EXISTS", "Customer with this tax ID already exists")}
	f := NewRegisterForm(nil, creator)
	f = focusField(t, f, fieldTaxID)
	f = typeForm(t, f, "52998224725")

	f, cmd := update(t, f, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	f, _ = update(t, f, cmd())

	assert.Nil(t, f.Created())
	assert.Contains(t, f.View(), "Customer with this tax ID already exists")

	creator.err = errors.New("connection reset")
	f, cmd = update(t, f, key(tea.KeyCtrlS))
	f, _ = update(t, f, cmd())
	assert.Contains(t, f.View(), "connection reset")
}

func TestRegisterForm_Quit(t *testing.T) {
	f := NewRegisterForm(nil, nil)
	_, cmd := update(t, f, key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
