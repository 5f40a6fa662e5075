package mask

import "strings"

// Unmask returns the ASCII digits of s in order, dropping everything else
func Unmask(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Format renders s with the pattern of kind.
// Unknown kinds return the digits of s unchanged.
func Format(kind Kind, s string) string {
	digits := Unmask(s)
	if !kind.IsValid() {
		return digits
	}
	if limit := kind.MaxDigits(); len(digits) > limit {
		digits = digits[:limit]
	}
	return apply(kind.layoutFor(len(digits)), digits)
}

// FormatCPF renders a tax ID as ###.###.###-##
func FormatCPF(s string) string {
	return Format(KindTaxID, s)
}

// FormatPhone renders a phone number as (##) ####-#### or (##) #####-####
func FormatPhone(s string) string {
	return Format(KindPhone, s)
}

// FormatCEP renders a postal code as #####-###
func FormatCEP(s string) string {
	return Format(KindPostalCode, s)
}

// IsComplete reports whether s carries enough digits to fill a layout of kind
func IsComplete(kind Kind, s string) bool {
	if !kind.IsValid() {
		return false
	}
	n := len(Unmask(s))
	for _, l := range patterns[kind].layouts {
		if n == slots(l) {
			return true
		}
	}
	return false
}

// apply writes digits into the slots of layout. Literals are emitted only
// while digits remain, so the result never ends with a separator.
func apply(layout, digits string) string {
	if digits == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(layout))

	next := 0
	for i := 0; i < len(layout) && next < len(digits); i++ {
		if layout[i] == digitSlot {
			sb.WriteByte(digits[next])
			next++
			continue
		}
		sb.WriteByte(layout[i])
	}
	return sb.String()
}
