package service

import "github.com/shopspring/decimal"

// factorIVA converts a net sale price into the menu display price.
var factorIVA = decimal.NewFromFloat(1.16)

// CalcularMargen is the utility margin of a platillo on a menu:
// precio de venta minus costo administrativo. It can be negative; pricing
// below cost is a business decision, not a validation error.
func CalcularMargen(precioVenta, costoAdministrativo decimal.Decimal) decimal.Decimal {
	return precioVenta.Sub(costoAdministrativo)
}

// PrecioConIVA applies the IVA factor to a net sale price.
func PrecioConIVA(precioVenta decimal.Decimal) decimal.Decimal {
	return precioVenta.Mul(factorIVA).Round(2)
}
