package entity

import "github.com/shopspring/decimal"

// MoneyPlaces decimales de la moneda de despliegue (rupia: sin subunidades).
const MoneyPlaces int32 = 0

// RoundMoney es la única política de redondeo monetario: half-up a MoneyPlaces.
// Se aplica a cada importe de línea y al impuesto; ningún otro punto redondea.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
