package inventario

import "github.com/shopspring/decimal"

var cien = decimal.NewFromInt(100)

// PrecioConUtilidad calcula el precio de venta a partir del costo y el margen
// de utilidad (servicio de dominio).
// Precio = Costo / (1 - Utilidad/100): la utilidad es margen sobre el precio
// de venta, no recargo sobre el costo. Con utilidad 40%, precio = costo / 0.60.
func PrecioConUtilidad(costo, utilidad decimal.Decimal) decimal.Decimal {
	if costo.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if utilidad.LessThan(decimal.Zero) || utilidad.GreaterThanOrEqual(cien) {
		return decimal.Zero
	}
	divisor := decimal.NewFromInt(1).Sub(utilidad.Div(cien))
	return costo.Div(divisor).Round(2)
}

// UtilidadImplicita devuelve el margen % implícito entre un costo y un precio
// ya fijados. Inversa de PrecioConUtilidad; cero si los datos no alcanzan.
func UtilidadImplicita(costo, precio decimal.Decimal) decimal.Decimal {
	if costo.LessThanOrEqual(decimal.Zero) || precio.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Sub(costo.Div(precio)).Mul(cien).Round(2)
}
