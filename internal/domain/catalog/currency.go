package catalog

import "errors"

var ErrCurrencyNotFound = errors.New("catalog: currency not found")

// Currency is a supported store currency. The set is seeded once through the
// setup endpoint and referenced by regions and variants.
type Currency struct {
	Code         string // uppercase ISO 4217
	Symbol       string
	SymbolNative string
	Name         string
}

// DefaultCurrencies returns the currencies the store is seeded with.
func DefaultCurrencies() []Currency {
	return []Currency{
		{Code: "CNY", Symbol: "¥", SymbolNative: "¥", Name: "Chinese Yuan"},
		{Code: "USD", Symbol: "$", SymbolNative: "$", Name: "US Dollar"},
		{Code: "EUR", Symbol: "€", SymbolNative: "€", Name: "Euro"},
		{Code: "AUD", Symbol: "A$", SymbolNative: "$", Name: "Australian Dollar"},
		{Code: "ZAR", Symbol: "R", SymbolNative: "R", Name: "South African Rand"},
		{Code: "BRL", Symbol: "R$", SymbolNative: "R$", Name: "Brazilian Real"},
	}
}
