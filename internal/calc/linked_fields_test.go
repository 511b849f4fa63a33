package calc

import (
	"testing"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLinkedFields(t *testing.T) {
	tests := []struct {
		name string
		in   LinkedFieldsInput
		want LinkedFields
	}{
		{
			name: "total edited derives price",
			in:   LinkedFieldsInput{Changed: FieldTotal, Total: "5000", Quantity: "0.1", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "5000", Quantity: "0.1", PricePerUnit: "50000.00"},
		},
		{
			name: "total edited without quantity leaves price alone",
			in:   LinkedFieldsInput{Changed: FieldTotal, Total: "5000", Quantity: "", PricePerUnit: "10", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "5000", Quantity: "", PricePerUnit: "10"},
		},
		{
			name: "quantity edited prefers price from total",
			in:   LinkedFieldsInput{Changed: FieldQuantity, Total: "1000", Quantity: "0.5", PricePerUnit: "1", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "1000", Quantity: "0.5", PricePerUnit: "2000.00"},
		},
		{
			name: "quantity edited derives total from price",
			in:   LinkedFieldsInput{Changed: FieldQuantity, Total: "", Quantity: "0.25", PricePerUnit: "60000", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "15000.00", Quantity: "0.25", PricePerUnit: "60000"},
		},
		{
			name: "quantity zero with total clears price",
			in:   LinkedFieldsInput{Changed: FieldQuantity, Total: "1000", Quantity: "0", PricePerUnit: "5", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "1000", Quantity: "0", PricePerUnit: ""},
		},
		{
			name: "price edited derives total",
			in:   LinkedFieldsInput{Changed: FieldPricePerUnit, Total: "1", Quantity: "0.1", PricePerUnit: "60000", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "6000.00", Quantity: "0.1", PricePerUnit: "60000"},
		},
		{
			name: "price edited derives quantity when only total known",
			in:   LinkedFieldsInput{Changed: FieldPricePerUnit, Total: "3000", Quantity: "", PricePerUnit: "60000", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "3000", Quantity: "0.05000000", PricePerUnit: "60000"},
		},
		{
			name: "price zero does not divide",
			in:   LinkedFieldsInput{Changed: FieldPricePerUnit, Total: "3000", Quantity: "", PricePerUnit: "0", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "3000", Quantity: "", PricePerUnit: "0"},
		},
		{
			name: "sats quantity converted to BTC",
			in:   LinkedFieldsInput{Changed: FieldTotal, Total: "600", Quantity: "1000000", Unit: model.UnitSats, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "600", Quantity: "1000000", PricePerUnit: "60000.00"},
		},
		{
			name: "sats quantity back-computed",
			in:   LinkedFieldsInput{Changed: FieldPricePerUnit, Total: "600", Quantity: "", PricePerUnit: "60000", Unit: model.UnitSats, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "600", Quantity: "1000000", PricePerUnit: "60000"},
		},
		{
			name: "BRL input and output use comma",
			in:   LinkedFieldsInput{Changed: FieldTotal, Total: "1.500,00", Quantity: "0,5", Unit: model.UnitBTC, Currency: model.CurrencyBRL},
			want: LinkedFields{Total: "1.500,00", Quantity: "0,5", PricePerUnit: "3000,00"},
		},
		{
			name: "malformed total clears price",
			in:   LinkedFieldsInput{Changed: FieldTotal, Total: "abc", Quantity: "1", PricePerUnit: "7", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "abc", Quantity: "1", PricePerUnit: ""},
		},
		{
			name: "cleared total clears price",
			in:   LinkedFieldsInput{Changed: FieldTotal, Total: "", Quantity: "2", PricePerUnit: "50", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "", Quantity: "2", PricePerUnit: ""},
		},
		{
			name: "cleared price clears total",
			in:   LinkedFieldsInput{Changed: FieldPricePerUnit, Total: "300", Quantity: "5", PricePerUnit: "", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "", Quantity: "5", PricePerUnit: ""},
		},
		{
			name: "cleared quantity clears price derived from total",
			in:   LinkedFieldsInput{Changed: FieldQuantity, Total: "120", Quantity: "", PricePerUnit: "60", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "120", Quantity: "", PricePerUnit: ""},
		},
		{
			name: "cleared quantity clears total derived from price",
			in:   LinkedFieldsInput{Changed: FieldQuantity, Total: "0", Quantity: "", PricePerUnit: "60", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "", Quantity: "", PricePerUnit: "60"},
		},
		{
			name: "negative total is malformed",
			in:   LinkedFieldsInput{Changed: FieldTotal, Total: "-100", Quantity: "2", PricePerUnit: "10", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "-100", Quantity: "2", PricePerUnit: ""},
		},
		{
			name: "exponent price is malformed",
			in:   LinkedFieldsInput{Changed: FieldPricePerUnit, Total: "9", Quantity: "1", PricePerUnit: "1e30000000", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "", Quantity: "1", PricePerUnit: "1e30000000"},
		},
		{
			name: "plus sign price is malformed",
			in:   LinkedFieldsInput{Changed: FieldPricePerUnit, Total: "9", Quantity: "1", PricePerUnit: "+5", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "", Quantity: "1", PricePerUnit: "+5"},
		},
		{
			name: "exponent quantity is malformed",
			in:   LinkedFieldsInput{Changed: FieldQuantity, Total: "1000", Quantity: "1e3", PricePerUnit: "5", Unit: model.UnitBTC, Currency: model.CurrencyUSD},
			want: LinkedFields{Total: "1000", Quantity: "1e3", PricePerUnit: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateLinkedFields(tt.in))
		})
	}
}

// After solving, total ~= quantity * price within the two-decimal rounding of money.
func TestCalculateLinkedFields_Identity(t *testing.T) {
	starts := []LinkedFieldsInput{
		{Total: "1234.56", Quantity: "0.0213", PricePerUnit: ""},
		{Total: "", Quantity: "0.75", PricePerUnit: "64321.99"},
		{Total: "999.99", Quantity: "", PricePerUnit: "58000"},
		{Total: "250", Quantity: "0.004", PricePerUnit: "61000"},
	}
	fields := []LinkedField{FieldTotal, FieldQuantity, FieldPricePerUnit}

	for _, start := range starts {
		for _, changed := range fields {
			in := start
			in.Changed = changed
			in.Unit = model.UnitBTC
			in.Currency = model.CurrencyUSD

			out := CalculateLinkedFields(in)

			total, okT := ParseDecimalInput(out.Total, model.CurrencyUSD)
			price, okP := ParseDecimalInput(out.PricePerUnit, model.CurrencyUSD)
			qty, okQ := parseCanonical(out.Quantity)
			if !okT || !okP || !okQ {
				// the edited field could not drive a solution; nothing to check
				continue
			}
			if out == (LinkedFields{Total: in.Total, Quantity: in.Quantity, PricePerUnit: in.PricePerUnit}) {
				continue
			}

			product, _ := qty.Mul(price).Float64()
			tf, _ := total.Float64()
			q, _ := qty.Float64()
			tolerance := 0.01 + q*0.01
			require.InDelta(t, tf, product, tolerance, "start=%+v changed=%s out=%+v", start, changed, out)
		}
	}
}
