package view

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatAmount formats an amount with pt-BR separators and two decimals, e.g. "1.234,50".
func FormatAmount(amount decimal.Decimal) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatBRL formats an amount as Brazilian reais, e.g. "R$\u00a090,00".
// The symbol is separated by a no-break space, as pt-BR currency formatting does.
func FormatBRL(amount decimal.Decimal) string {
	return "R$\u00a0" + FormatAmount(amount)
}
