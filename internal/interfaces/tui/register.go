package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	partnerapp "github.com/optica/backend/internal/application/partner"
	"github.com/optica/backend/internal/domain/shared"
	"github.com/optica/backend/internal/domain/shared/mask"
	"github.com/optica/backend/internal/infrastructure/postalcode"
)

// AddressResolver looks up the address of a postal code
type AddressResolver interface {
	Resolve(ctx context.Context, code string) postalcode.Result
}

// CustomerCreator registers a customer
type CustomerCreator interface {
	Create(ctx context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error)
}

// Form field positions, in tab order
const (
	fieldName = iota
	fieldTaxID
	fieldPhone
	fieldEmail
	fieldPostalCode
	fieldNumber
	fieldComplement
	fieldStreet
	fieldNeighborhood
	fieldCity
	fieldState
	fieldCount
)

const defaultRequestTimeout = 10 * time.Second

// lookupMsg carries the outcome of a postal code lookup
type lookupMsg struct {
	code   string
	result postalcode.Result
}

// submitMsg carries the outcome of a registration
type submitMsg struct {
	customer *partnerapp.CustomerResponse
	err      error
}

// RegisterForm is the bubbletea model of the customer registration screen.
// Completing the postal code triggers a lookup that fills the empty address
// fields.
type RegisterForm struct {
	inputs   []Input
	focus    int
	resolver AddressResolver
	creator  CustomerCreator
	styles   Styles
	timeout  time.Duration

	looked     string
	lookingUp  bool
	submitting bool
	status     string
	statusErr  bool
	created    *partnerapp.CustomerResponse
}

// RegisterOption configures a RegisterForm
type RegisterOption func(*RegisterForm)

// WithStyles overrides the default styles
func WithStyles(styles Styles) RegisterOption {
	return func(f *RegisterForm) {
		f.styles = styles
	}
}

// WithRequestTimeout bounds each lookup and registration call
func WithRequestTimeout(d time.Duration) RegisterOption {
	return func(f *RegisterForm) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// NewRegisterForm creates the form. A nil resolver disables address completion.
func NewRegisterForm(resolver AddressResolver, creator CustomerCreator, opts ...RegisterOption) RegisterForm {
	f := RegisterForm{
		resolver: resolver,
		creator:  creator,
		styles:   DefaultStyles(),
		timeout:  defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(&f)
	}
	f.inputs = newRegisterInputs()
	f.inputs[fieldName].Focus()
	return f
}

func newRegisterInputs() []Input {
	inputs := make([]Input, fieldCount)
	inputs[fieldName] = NewInput("Name", 200)
	inputs[fieldTaxID] = NewMaskedInput("CPF", mask.KindTaxID)
	inputs[fieldPhone] = NewMaskedInput("Phone", mask.KindPhone)
	inputs[fieldEmail] = NewInput("Email", 200)
	inputs[fieldPostalCode] = NewMaskedInput("CEP", mask.KindPostalCode)
	inputs[fieldNumber] = NewInput("Number", 20)
	inputs[fieldComplement] = NewInput("Complement", 200)
	inputs[fieldStreet] = NewInput("Street", 200)
	inputs[fieldNeighborhood] = NewInput("Neighborhood", 100)
	inputs[fieldCity] = NewInput("City", 100)
	inputs[fieldState] = NewInput("State", 2)
	return inputs
}

// Init implements tea.Model
func (f RegisterForm) Init() tea.Cmd {
	return textinput.Blink
}

// Created returns the registered customer once the form was submitted
func (f RegisterForm) Created() *partnerapp.CustomerResponse {
	return f.created
}

// Request builds the registration request from the current inputs
func (f RegisterForm) Request() partnerapp.CreateCustomerRequest {
	value := func(i int) string {
		return strings.TrimSpace(f.inputs[i].Value())
	}
	return partnerapp.CreateCustomerRequest{
		Name:  value(fieldName),
		TaxID: value(fieldTaxID),
		Phone: value(fieldPhone),
		Email: value(fieldEmail),
		Address: partnerapp.AddressInput{
			PostalCode:   value(fieldPostalCode),
			Street:       value(fieldStreet),
			Number:       value(fieldNumber),
			Complement:   value(fieldComplement),
			Neighborhood: value(fieldNeighborhood),
			City:         value(fieldCity),
			State:        strings.ToUpper(value(fieldState)),
		},
	}
}

// Update implements tea.Model
func (f RegisterForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return f.handleKey(msg)

	case lookupMsg:
		f.applyLookup(msg)
		return f, nil

	case submitMsg:
		f.submitting = false
		if msg.err != nil {
			f.setError(errorMessage(msg.err))
			return f, nil
		}
		f.created = msg.customer
		f.status = ""
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f RegisterForm) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return f, tea.Quit
	}

	if f.created != nil {
		if msg.Type == tea.KeyEnter {
			next := NewRegisterForm(f.resolver, f.creator, WithStyles(f.styles), WithRequestTimeout(f.timeout))
			return next, next.Init()
		}
		return f, nil
	}

	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		cmd = f.move(1)
		return f, cmd
	case tea.KeyShiftTab, tea.KeyUp:
		cmd = f.move(-1)
		return f, cmd
	case tea.KeyCtrlS:
		cmd = f.submit()
		return f, cmd
	case tea.KeyEnter:
		if f.focus == fieldCount-1 {
			cmd = f.submit()
		} else {
			cmd = f.move(1)
		}
		return f, cmd
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.focus == fieldPostalCode {
		if lookup := f.checkPostalCode(); lookup != nil {
			return f, tea.Batch(cmd, lookup)
		}
	}
	return f, cmd
}

func (f *RegisterForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

// checkPostalCode starts a lookup the first time the CEP becomes complete
func (f *RegisterForm) checkPostalCode() tea.Cmd {
	cep := f.inputs[fieldPostalCode]
	if !cep.Complete() {
		f.looked = ""
		f.lookingUp = false
		return nil
	}
	if f.resolver == nil || cep.Value() == f.looked {
		return nil
	}

	f.looked = cep.Value()
	f.lookingUp = true
	f.status = ""
	return lookupCmd(f.resolver, f.looked, f.timeout)
}

func lookupCmd(resolver AddressResolver, code string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return lookupMsg{code: code, result: resolver.Resolve(ctx, code)}
	}
}

func (f *RegisterForm) applyLookup(msg lookupMsg) {
	// The CEP was edited while the request was in flight
	if msg.code != f.looked {
		return
	}
	f.lookingUp = false

	switch {
	case msg.result.Found():
		addr := msg.result.Address
		f.fillEmpty(fieldStreet, addr.Street())
		f.fillEmpty(fieldNeighborhood, addr.Neighborhood())
		f.fillEmpty(fieldCity, addr.City())
		f.fillEmpty(fieldState, addr.State())
		f.fillEmpty(fieldComplement, addr.Complement())
		f.setInfo("Address found: " + addr.FullAddress())
	case msg.result.Status == postalcode.StatusNotFound:
		f.setError("Postal code not found")
	default:
		f.setError("Address service unavailable, fill in the address manually")
	}
}

func (f *RegisterForm) fillEmpty(field int, value string) {
	if value != "" && strings.TrimSpace(f.inputs[field].Value()) == "" {
		f.inputs[field].SetValue(value)
	}
}

func (f *RegisterForm) submit() tea.Cmd {
	if f.submitting {
		return nil
	}
	if f.creator == nil {
		f.setError("Registration is not available")
		return nil
	}
	if !f.inputs[fieldTaxID].Complete() {
		f.setError("CPF must have 11 digits")
		return nil
	}

	f.submitting = true
	f.status = ""
	req := f.Request()
	creator, timeout := f.creator, f.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		customer, err := creator.Create(ctx, req)
		return submitMsg{customer: customer, err: err}
	}
}

func (f *RegisterForm) setError(s string) {
	f.status, f.statusErr = s, true
}

func (f *RegisterForm) setInfo(s string) {
	f.status, f.statusErr = s, false
}

func errorMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}

// View implements tea.Model
func (f RegisterForm) View() string {
	var sb strings.Builder
	sb.WriteString(f.styles.Title.Render("Customer registration"))
	sb.WriteString("\n")

	if f.created != nil {
		sb.WriteString(f.styles.Success.Render(
			fmt.Sprintf("Registered %s (%s)", f.created.Name, f.created.TaxIDMasked)))
		sb.WriteString("\n")
		sb.WriteString(f.styles.Help.Render("enter: new customer • esc: quit"))
		return sb.String()
	}

	for _, input := range f.inputs {
		sb.WriteString(input.View(f.styles))
		sb.WriteString("\n")
	}

	switch {
	case f.lookingUp:
		sb.WriteString(f.styles.Muted.Render("Looking up postal code..."))
	case f.submitting:
		sb.WriteString(f.styles.Muted.Render("Saving..."))
	case f.status != "" && f.statusErr:
		sb.WriteString(f.styles.Error.Render(f.status))
	case f.status != "":
		sb.WriteString(f.styles.Muted.Render(f.status))
	}
	sb.WriteString("\n")
	sb.WriteString(f.styles.Help.Render("tab/shift+tab: move • enter: next • ctrl+s: save • esc: quit"))
	return sb.String()
}
