package mask

// ChangeFunc receives the digits-only value and the masked display after a keystroke
type ChangeFunc func(unmasked, masked string)

// Field keeps the display state of a masked text input.
//
// The display always equals Format(kind, v) where v is the latest raw input
// or reconciled external value. A Field belongs to a single event loop and
// is not safe for concurrent use.
type Field struct {
	kind     Kind
	source   string // latest raw input or external value
	display  string
	onChange ChangeFunc
}

// FieldOption configures a Field
type FieldOption func(*Field)

// WithValue seeds the field with an externally supplied value
func WithValue(value string) FieldOption {
	return func(f *Field) {
		f.source = value
		f.display = Format(f.kind, value)
	}
}

// WithOnChange sets the callback invoked once per keystroke
func WithOnChange(fn ChangeFunc) FieldOption {
	return func(f *Field) {
		f.onChange = fn
	}
}

// NewField creates a field for kind
func NewField(kind Kind, opts ...FieldOption) *Field {
	f := &Field{kind: kind}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Kind returns the active mask kind
func (f *Field) Kind() Kind {
	return f.kind
}

// Display returns the masked text shown to the user
func (f *Field) Display() string {
	return f.display
}

// Value returns the digits-only form of the display
func (f *Field) Value() string {
	return Unmask(f.display)
}

// Complete reports whether the display holds a full value for the kind
func (f *Field) Complete() bool {
	return IsComplete(f.kind, f.display)
}

// Input handles one keystroke. raw is the full text of the control after the
// key was applied. The display is recomputed, then the change callback runs
// exactly once with the unmasked and masked values.
func (f *Field) Input(raw string) string {
	f.source = raw
	f.display = Format(f.kind, raw)
	if f.onChange != nil {
		f.onChange(Unmask(f.display), f.display)
	}
	return f.display
}

// Reconcile re-derives the display from an external value. The change
// callback is not invoked; the caller already owns that value.
func (f *Field) Reconcile(external string) {
	f.source = external
	f.display = Format(f.kind, external)
}

// SetKind switches the mask and re-renders the latest raw input or external
// value with it. Digits the previous kind truncated come back when the new
// kind has room for them.
func (f *Field) SetKind(kind Kind) {
	if kind == f.kind {
		return
	}
	f.kind = kind
	f.display = Format(kind, f.source)
}
