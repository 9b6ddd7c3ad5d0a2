package cartera

import "github.com/shopspring/decimal"

// MontoMoneda lleva un valor a la precisión de la moneda (2 decimales, redondeo bancario),
// la misma que usan las columnas NUMERIC(12,2).
func MontoMoneda(v decimal.Decimal) decimal.Decimal {
	return v.RoundBank(2)
}
