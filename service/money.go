package service

import "github.com/shopspring/decimal"

// roundMoney rounds a currency amount half away from zero to 2 decimals.
func roundMoney(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// subtractMoney returns a-b computed in decimal and rounded to 2 decimals.
func subtractMoney(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}
