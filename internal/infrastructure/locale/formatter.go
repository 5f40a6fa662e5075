// Package locale renders currency and date values for the store's locale.
package locale

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // the Sao Paulo zone must resolve on hosts without zoneinfo

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/optica/backend/internal/domain/shared/valueobject"
)

// Fixed locale defaults
const (
	DefaultLanguage = "pt-BR"
	DefaultCurrency = "BRL"
	DefaultTimezone = "America/Sao_Paulo"
)

// Placeholders rendered for malformed input
const (
	InvalidDate = "Invalid Date"
	notANumber  = "NaN"
	infinity    = "∞"
)

const nbsp = "\u00a0"

// dateLayouts are tried in order; layouts without an offset are read as wall
// time in the formatter's zone
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Config selects the locale of a Formatter
type Config struct {
	Language string
	Currency string
	Timezone string
}

// DefaultConfig returns the pt-BR / BRL / America/Sao_Paulo configuration
func DefaultConfig() Config {
	return Config{
		Language: DefaultLanguage,
		Currency: DefaultCurrency,
		Timezone: DefaultTimezone,
	}
}

// Formatter renders values for one locale. It is immutable and safe for
// concurrent use.
type Formatter struct {
	tag        language.Tag
	symbol     string
	groupSep   string
	decimalSep string
	loc        *time.Location
}

// New creates a Formatter for cfg. Empty fields take the defaults.
func New(cfg Config) (*Formatter, error) {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}

	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", cfg.Language, err)
	}
	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", cfg.Currency, err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	printer := message.NewPrinter(tag)
	group, dec := separators(printer)
	return &Formatter{
		tag:        tag,
		symbol:     currencySymbol(printer, unit),
		groupSep:   group,
		decimalSep: dec,
		loc:        loc,
	}, nil
}

var defaultFormatter = mustDefault()

func mustDefault() *Formatter {
	f, err := New(DefaultConfig())
	if err == nil {
		return f
	}
	// Only reachable if the embedded zone database is missing the zone
	printer := message.NewPrinter(language.BrazilianPortuguese)
	group, dec := separators(printer)
	return &Formatter{
		tag:        language.BrazilianPortuguese,
		symbol:     currencySymbol(printer, currency.BRL),
		groupSep:   group,
		decimalSep: dec,
		loc:        time.FixedZone("BRT", -3*60*60),
	}
}

// separators reads the locale's grouping and decimal separators off a sample
// rendering of 1234.50. Falls back to the pt-BR ones.
func separators(p *message.Printer) (group, dec string) {
	sample := p.Sprintf("%.2f", 1234.5)
	i := strings.Index(sample, "234")
	j := strings.LastIndex(sample, "50")
	if !strings.HasPrefix(sample, "1") || i < 1 || j < i+3 {
		return ".", ","
	}
	return sample[1:i], sample[i+3 : j]
}

// Default returns the package formatter
func Default() *Formatter {
	return defaultFormatter
}

// FormatCurrency renders v with the default formatter
func FormatCurrency(v any) string {
	return defaultFormatter.FormatCurrency(v)
}

// FormatDate renders v with the default formatter
func FormatDate(v any) string {
	return defaultFormatter.FormatDate(v)
}

// FormatDateTime renders v with the default formatter
func FormatDateTime(v any) string {
	return defaultFormatter.FormatDateTime(v)
}

// Language returns the locale tag
func (f *Formatter) Language() language.Tag {
	return f.tag
}

// Location returns the zone dates are rendered in
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Symbol returns the currency symbol
func (f *Formatter) Symbol() string {
	return f.symbol
}

// FormatCurrency renders a monetary amount with two fraction digits, e.g.
// "R$ 1.234,50". Accepted inputs are Go numeric types, decimal.Decimal,
// valueobject.Money and numeric strings. Anything else renders "R$ NaN".
func (f *Formatter) FormatCurrency(v any) string {
	d, special, ok := toDecimal(v)
	if !ok {
		return f.symbol + nbsp + notANumber
	}
	switch special {
	case 1:
		return f.symbol + nbsp + infinity
	case -1:
		return "-" + f.symbol + nbsp + infinity
	}

	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + f.symbol + nbsp + f.groupDigits(d.StringFixed(2))
}

// groupDigits localizes a non-negative fixed-point string such as "1234.50"
func (f *Formatter) groupDigits(fixed string) string {
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(f.groupSep)
		b.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		b.WriteString(f.decimalSep)
		b.WriteString(frac)
	}
	return b.String()
}

// FormatDate renders v as dd/mm/yyyy
func (f *Formatter) FormatDate(v any) string {
	t, ok := f.toTime(v)
	if !ok {
		return InvalidDate
	}
	return t.Format("02/01/2006")
}

// FormatDateTime renders v as dd/mm/yyyy HH:MM
func (f *Formatter) FormatDateTime(v any) string {
	t, ok := f.toTime(v)
	if !ok {
		return InvalidDate
	}
	return t.Format("02/01/2006 15:04")
}

// ParseDate reads s with the accepted layouts, in the formatter's zone
func (f *Formatter) ParseDate(s string) (time.Time, error) {
	t, ok := f.parseString(s)
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return t, nil
}

// DateInput reads all-digit text, optionally signed, as Unix milliseconds and
// returns anything else unchanged for the layout parser
func DateInput(s string) any {
	v := strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		return ms
	}
	return v
}

func (f *Formatter) toTime(v any) (time.Time, bool) {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		t = *x
	case string:
		return f.parseString(x)
	case int64:
		t = time.UnixMilli(x)
	case int:
		t = time.UnixMilli(int64(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return time.Time{}, false
		}
		t = time.UnixMilli(int64(x))
	default:
		return time.Time{}, false
	}
	if t.IsZero() {
		return time.Time{}, false
	}
	return t.In(f.loc), true
}

func (f *Formatter) parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, f.loc)
		if err == nil {
			return t.In(f.loc), true
		}
	}
	return time.Time{}, false
}

// toDecimal converts v to a decimal. special is +1/-1 for infinities.
func toDecimal(v any) (d decimal.Decimal, special int, ok bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, 0, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Decimal{}, 0, false
		}
		return *x, 0, true
	case valueobject.Money:
		return x.Amount(), 0, true
	case int:
		return decimal.NewFromInt(int64(x)), 0, true
	case int8:
		return decimal.NewFromInt(int64(x)), 0, true
	case int16:
		return decimal.NewFromInt(int64(x)), 0, true
	case int32:
		return decimal.NewFromInt(int64(x)), 0, true
	case int64:
		return decimal.NewFromInt(x), 0, true
	case uint:
		return fromUint(uint64(x)), 0, true
	case uint8:
		return fromUint(uint64(x)), 0, true
	case uint16:
		return fromUint(uint64(x)), 0, true
	case uint32:
		return fromUint(uint64(x)), 0, true
	case uint64:
		return fromUint(x), 0, true
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return decimal.Decimal{}, 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return decimal.Decimal{}, 0, false
		}
		return fromFloat(parsed)
	default:
		return decimal.Decimal{}, 0, false
	}
}

func fromUint(x uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
}

func fromFloat(x float64) (decimal.Decimal, int, bool) {
	switch {
	case math.IsNaN(x):
		return decimal.Decimal{}, 0, false
	case math.IsInf(x, 1):
		return decimal.Decimal{}, 1, true
	case math.IsInf(x, -1):
		return decimal.Decimal{}, -1, true
	}
	return decimal.NewFromFloat(x), 0, true
}

// knownSymbols backs up the CLDR lookup
var knownSymbols = map[string]string{
	"BRL": "R$",
	"USD": "US$",
	"EUR": "€",
}

func currencySymbol(p *message.Printer, unit currency.Unit) (symbol string) {
	defer func() {
		if recover() != nil || symbol == "" || strings.Contains(symbol, "%!") {
			symbol = knownSymbols[unit.String()]
			if symbol == "" {
				symbol = unit.String()
			}
		}
	}()
	return strings.TrimSpace(p.Sprint(currency.Symbol(unit)))
}
