package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-MX"))

// FormatMoney formatea un importe en pesos con separador de miles y dos decimales.
// Ej: 1160 → "$1,160.00"
func FormatMoney(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return printer.Sprintf("$%v", number.Decimal(f, number.Scale(2)))
}
