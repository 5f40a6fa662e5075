package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica/backend/internal/domain/shared/mask"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeInto(in Input, s string) Input {
	for _, r := range s {
		in, _ = in.Update(runes(string(r)))
	}
	return in
}

func TestMaskedInput_Typing(t *testing.T) {
	type change struct{ unmasked, masked string }
	var changes []change

	in := NewMaskedInput("CPF", mask.KindTaxID, mask.WithOnChange(func(unmasked, masked string) {
		changes = append(changes, change{unmasked, masked})
	}))
	in.Focus()

	in = typeInto(in, "52998224725")

	assert.Equal(t, "529.982.247-25", in.Display())
	assert.Equal(t, "52998224725", in.Value())
	assert.True(t, in.Complete())
	assert.True(t, in.Masked())

	require.Len(t, changes, 11)
	assert.Equal(t, change{"5", "5"}, changes[0])
	assert.Equal(t, change{"5299", "529.9"}, changes[3])
	assert.Equal(t, change{"52998224725", "529.982.247-25"}, changes[10])
}

func TestMaskedInput_IgnoresNonDigitsAndExcess(t *testing.T) {
	in := NewMaskedInput("CEP", mask.KindPostalCode)
	in.Focus()

	in = typeInto(in, "01a001-0009")

	assert.Equal(t, "01001-000", in.Display())
	assert.Equal(t, "01001000", in.Value())
}

func TestMaskedInput_Backspace(t *testing.T) {
	in := NewMaskedInput("CEP", mask.KindPostalCode)
	in.Focus()
	in = typeInto(in, "01001000")

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "01001-00", in.Display())

	for range 2 {
		in, _ = in.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	// no separator is left dangling
	assert.Equal(t, "01001", in.Display())
	assert.Equal(t, "01001", in.Value())
	assert.False(t, in.Complete())

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "0100", in.Display())
}

func TestMaskedInput_PhoneSwitchesLayout(t *testing.T) {
	in := NewMaskedInput("Phone", mask.KindPhone)
	in.Focus()

	in = typeInto(in, "1133334444")
	assert.Equal(t, "(11) 3333-4444", in.Display())
	assert.True(t, in.Complete())

	in = typeInto(in, "5")
	assert.Equal(t, "(11) 33334-4445", in.Display())
	assert.True(t, in.Complete())
}

func TestMaskedInput_SetValueDoesNotNotify(t *testing.T) {
	calls := 0
	in := NewMaskedInput("CPF", mask.KindTaxID, mask.WithOnChange(func(string, string) { calls++ }))

	in.SetValue("52998224725")

	assert.Equal(t, "529.982.247-25", in.Display())
	assert.Zero(t, calls)
}

func TestMaskedInput_SeededValue(t *testing.T) {
	in := NewMaskedInput("CEP", mask.KindPostalCode, mask.WithValue("01001000"))
	assert.Equal(t, "01001-000", in.Display())
}

func TestInput_Unfocused(t *testing.T) {
	in := NewMaskedInput("CPF", mask.KindTaxID)

	in = typeInto(in, "123")

	assert.Empty(t, in.Display())
	assert.False(t, in.Focused())
}

func TestInput_Plain(t *testing.T) {
	in := NewInput("Name", 10)
	in.Focus()

	in = typeInto(in, "Maria da Silva")

	assert.False(t, in.Masked())
	assert.Equal(t, "Maria da S", in.Value())
	assert.True(t, in.Complete())
}

func TestInput_View(t *testing.T) {
	styles := DefaultStyles()
	in := NewMaskedInput("CEP", mask.KindPostalCode)
	assert.Contains(t, in.View(styles), "CEP")
	assert.NotContains(t, in.View(styles), "✓")

	in.SetValue("01001000")
	view := in.View(styles)
	assert.True(t, strings.Contains(view, "01001-000"))
	assert.Contains(t, view, "✓")
}
