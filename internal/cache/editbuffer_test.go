package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12,50", 12.5},
		{"12.50", 12.5},
		{"1.234,56", 1234.56},
		{"R$ 42,00", 42},
		{"42", 42},
		{"", 0},
		{"abc", 0},
		{"  9,9 ", 9.9},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePrice(tc.in), "ParsePrice(%q)", tc.in)
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"  12 un", 12},
		{"", 0},
		{"abc", 0},
		{"-5", 5}, // sign stripped; quantity is never negative
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseQuantity(tc.in), "ParseQuantity(%q)", tc.in)
	}
}

func TestEditBuffer_FieldsTrimsAndCoerces(t *testing.T) {
	buf := EditBuffer{Name: "  Rice  ", Price: "12,50", Quantity: ""}
	fields := buf.Fields()

	assert.Equal(t, "Rice", fields.Name)
	assert.Equal(t, 12.5, fields.Price)
	assert.Zero(t, fields.Quantity)
}
