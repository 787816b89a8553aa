package cache

import (
	"strconv"
	"strings"

	"github.com/carlosbandelli/superlist/internal/api"
)

// EditBuffer holds a product's provisional field values as strings while a
// row is in edit mode. It is transient: discarded on save or cancel, never
// persisted.
type EditBuffer struct {
	Name     string
	Price    string
	Quantity string
}

func newEditBuffer(p api.Product) EditBuffer {
	return EditBuffer{
		Name:     p.Name,
		Price:    strconv.FormatFloat(p.Price, 'f', 2, 64),
		Quantity: strconv.Itoa(p.Quantity),
	}
}

// Fields parses the buffer into the payload sent to the server. Malformed
// or empty numeric input coerces to zero instead of being rejected: the
// server is the authority on acceptability.
func (b EditBuffer) Fields() api.ProductFields {
	return api.ProductFields{
		Name:     strings.TrimSpace(b.Name),
		Price:    ParsePrice(b.Price),
		Quantity: ParseQuantity(b.Quantity),
	}
}

// ParsePrice sanitizes user-entered price text. Non-numeric characters are
// stripped, a comma counts as a decimal separator ("12,50" → 12.50), and
// when both separators appear the last one is the decimal point ("1.234,56"
// → 1234.56). Empty or malformed input is 0.
func ParsePrice(s string) float64 {
	var b strings.Builder
	lastSep := -1
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',' || r == '.':
			lastSep = b.Len()
			b.WriteByte('.')
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	// Keep only the last separator; earlier ones are grouping.
	if lastSep >= 0 {
		head := strings.ReplaceAll(cleaned[:lastSep], ".", "")
		tail := strings.ReplaceAll(cleaned[lastSep:], ".", "")
		cleaned = head + "." + tail
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// ParseQuantity sanitizes user-entered quantity text. Only digits survive;
// empty or malformed input is 0.
func ParseQuantity(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	value, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return value
}
