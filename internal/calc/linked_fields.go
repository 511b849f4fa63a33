package calc

import (
	"strings"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// LinkedField names one of the three fields tied by total = quantity * price.
type LinkedField string

const (
	FieldTotal        LinkedField = "total"
	FieldQuantity     LinkedField = "quantity"
	FieldPricePerUnit LinkedField = "pricePerUnit"
)

// btcDecimals is the display precision of a BTC quantity.
const btcDecimals = 8

var satsPerBTC = decimal.NewFromInt(model.SatsPerBTC)

// LinkedFieldsInput carries the raw field values of a transaction form.
// Quantity is expressed in Unit; Total and PricePerUnit use Currency's separators.
type LinkedFieldsInput struct {
	Changed      LinkedField        `json:"changed"`
	Total        string             `json:"total"`
	Quantity     string             `json:"quantity"`
	PricePerUnit string             `json:"pricePerUnit"`
	Unit         model.QuantityUnit `json:"unit"`
	Currency     model.Currency     `json:"currency"`
}

// LinkedFields are the form values after the dependent field was solved.
type LinkedFields struct {
	Total        string `json:"total"`
	Quantity     string `json:"quantity"`
	PricePerUnit string `json:"pricePerUnit"`
}

// CalculateLinkedFields keeps total = quantity * pricePerUnit consistent after
// the user edited in.Changed. At most one field is solved per call:
//
//   - total edited: price = total / quantity when quantity > 0.
//   - quantity edited: price = total / quantity when total > 0, otherwise
//     total = quantity * price when a price is known.
//   - price edited: total = quantity * price when quantity > 0, otherwise
//     quantity = total / price when a total is known.
//
// A derived value that would divide by zero, or that depends on an edited
// field that is empty or malformed, is returned as an empty string. Values
// that were not solved are echoed back unchanged.
func CalculateLinkedFields(in LinkedFieldsInput) LinkedFields {
	out := LinkedFields{
		Total:        in.Total,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
	}

	total, totalOK := ParseDecimalInput(in.Total, in.Currency)
	price, priceOK := ParseDecimalInput(in.PricePerUnit, in.Currency)
	qty, qtyOK := parseCanonical(normalizeSeparators(in.Quantity, in.Currency))
	if qtyOK && in.Unit == model.UnitSats {
		qty = qty.Div(satsPerBTC)
	}

	switch in.Changed {
	case FieldTotal:
		if qtyOK && qty.IsPositive() {
			if totalOK {
				out.PricePerUnit = formatMoneyInput(total.Div(qty), in.Currency)
			} else {
				out.PricePerUnit = ""
			}
		}
	case FieldQuantity:
		switch {
		case totalOK && total.IsPositive():
			if qtyOK && qty.IsPositive() {
				out.PricePerUnit = formatMoneyInput(total.Div(qty), in.Currency)
			} else {
				out.PricePerUnit = ""
			}
		case priceOK && price.IsPositive():
			if qtyOK {
				out.Total = formatMoneyInput(qty.Mul(price), in.Currency)
			} else {
				out.Total = ""
			}
		}
	case FieldPricePerUnit:
		switch {
		case qtyOK && qty.IsPositive():
			if priceOK {
				out.Total = formatMoneyInput(qty.Mul(price), in.Currency)
			} else {
				out.Total = ""
			}
		case totalOK && total.IsPositive():
			if priceOK && price.IsPositive() {
				out.Quantity = formatQuantityInput(total.Div(price), in.Unit, in.Currency)
			} else {
				out.Quantity = ""
			}
		}
	}

	return out
}

func formatMoneyInput(d decimal.Decimal, currency model.Currency) string {
	return localizeSeparator(d.StringFixed(moneyDecimals), currency)
}

func formatQuantityInput(btc decimal.Decimal, unit model.QuantityUnit, currency model.Currency) string {
	if unit == model.UnitSats {
		return btc.Mul(satsPerBTC).Round(0).String()
	}
	return localizeSeparator(btc.StringFixed(btcDecimals), currency)
}

// localizeSeparator writes a dot-decimal string back in the currency's input convention.
func localizeSeparator(s string, currency model.Currency) string {
	if currency == model.CurrencyBRL {
		return strings.Replace(s, ".", ",", 1)
	}
	return s
}
