package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/optica/backend/internal/domain/shared/mask"
)

// Input is a labelled text input. When built with NewMaskedInput every edit
// is routed through a mask.Field, so the control always shows the masked
// display and Value returns digits only.
type Input struct {
	label string
	input textinput.Model
	field *mask.Field
}

// NewInput creates a plain text input
func NewInput(label string, charLimit int) Input {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = charLimit
	return Input{label: label, input: ti}
}

// NewMaskedInput creates an input formatted with kind. Field options seed
// the value or observe keystrokes.
func NewMaskedInput(label string, kind mask.Kind, opts ...mask.FieldOption) Input {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = kind.Placeholder()

	field := mask.NewField(kind, opts...)
	ti.SetValue(field.Display())
	return Input{label: label, input: ti, field: field}
}

// Label returns the input label
func (i Input) Label() string {
	return i.label
}

// Masked reports whether the input applies a mask
func (i Input) Masked() bool {
	return i.field != nil
}

// Value returns the digits of a masked input, or the raw text of a plain one
func (i Input) Value() string {
	if i.field != nil {
		return i.field.Value()
	}
	return i.input.Value()
}

// Display returns the text shown in the control
func (i Input) Display() string {
	return i.input.Value()
}

// Complete reports whether a masked input holds a full value. Plain inputs
// are complete when non-empty.
func (i Input) Complete() bool {
	if i.field != nil {
		return i.field.Complete()
	}
	return i.input.Value() != ""
}

// SetValue replaces the content from outside the keyboard loop. Masked
// inputs reconcile without notifying their change callback.
func (i *Input) SetValue(value string) {
	if i.field != nil {
		i.field.Reconcile(value)
		value = i.field.Display()
	}
	i.input.SetValue(value)
	i.input.CursorEnd()
}

// Focus gives the input keyboard focus
func (i *Input) Focus() tea.Cmd {
	return i.input.Focus()
}

// Blur removes keyboard focus
func (i *Input) Blur() {
	i.input.Blur()
}

// Focused reports whether the input has focus
func (i Input) Focused() bool {
	return i.input.Focused()
}

// Update forwards msg to the text input and re-masks the text when it changed
func (i Input) Update(msg tea.Msg) (Input, tea.Cmd) {
	before := i.input.Value()

	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)

	if i.field != nil {
		if raw := i.input.Value(); raw != before {
			i.input.SetValue(i.field.Input(raw))
			i.input.CursorEnd()
		}
	}
	return i, cmd
}

// View renders the label and the control
func (i Input) View(styles Styles) string {
	label := styles.Label.Render(i.label)
	if i.input.Focused() {
		label = styles.Focused.Render(i.label)
	}

	view := label + i.input.View()
	if i.field != nil && i.field.Complete() {
		view += " " + styles.Complete.Render("✓")
	}
	return view
}
