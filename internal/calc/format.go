package calc

import (
	"strings"
	"time"
	// zone database for images without /usr/share/zoneinfo
	_ "time/tzdata"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// DisplayDateLayout is the layout used for dates shown to the user.
const DisplayDateLayout = "2006-01-02 15:04"

// FormatMoney renders value with two decimals in the currency's convention:
// "R$ 1.234,56" for BRL, "$1,234.56" for USD and "1,234.56 EUR" otherwise.
func FormatMoney(value float64, currency model.Currency) string {
	d := decimal.NewFromFloat(value)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	intPart, fracPart, _ := strings.Cut(d.StringFixed(moneyDecimals), ".")

	switch currency {
	case model.CurrencyBRL:
		return sign + "R$ " + groupThousands(intPart, ".") + "," + fracPart
	case model.CurrencyUSD:
		return sign + "$" + groupThousands(intPart, ",") + "." + fracPart
	default:
		return sign + groupThousands(intPart, ",") + "." + fracPart + " " + string(currency)
	}
}

// FormatBTC renders a BTC amount either as "0.12345678 BTC" or "12,345,678 sats".
func FormatBTC(btc float64, unit model.QuantityUnit) string {
	d := decimal.NewFromFloat(btc)
	if unit == model.UnitSats {
		sats := d.Mul(satsPerBTC).Round(0)
		sign := ""
		if sats.IsNegative() {
			sign = "-"
			sats = sats.Neg()
		}
		return sign + groupThousands(sats.String(), ",") + " sats"
	}
	return d.StringFixed(btcDecimals) + " BTC"
}

// FormatDisplayDate renders t in the IANA timezone tz, falling back to UTC
// when the zone is unknown.
func FormatDisplayDate(t time.Time, tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayDateLayout)
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
