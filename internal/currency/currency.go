package currency

import "strings"

// Info describes one supported fiat display currency.
type Info struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Supported is the fixed set of display currencies.
var Supported = map[string]Info{
	"usd": {Symbol: "$", Name: "US Dollar"},
	"eur": {Symbol: "€", Name: "Euro"},
	"gbp": {Symbol: "£", Name: "British Pound"},
	"jpy": {Symbol: "¥", Name: "Japanese Yen"},
	"cad": {Symbol: "C$", Name: "Canadian Dollar"},
	"aud": {Symbol: "A$", Name: "Australian Dollar"},
	"chf": {Symbol: "CHF", Name: "Swiss Franc"},
	"cny": {Symbol: "¥", Name: "Chinese Yuan"},
	"inr": {Symbol: "₹", Name: "Indian Rupee"},
	"krw": {Symbol: "₩", Name: "South Korean Won"},
}

// MockRates are static USD conversion multipliers used only by the fallback
// price generator.
var MockRates = map[string]float64{
	"usd": 1,
	"eur": 0.85,
	"gbp": 0.73,
	"jpy": 110,
	"cad": 1.25,
	"aud": 1.35,
	"chf": 0.92,
	"cny": 6.45,
	"inr": 74,
	"krw": 1180,
}

// IsSupported reports whether code is a supported display currency.
func IsSupported(code string) bool {
	_, ok := Supported[code]
	return ok
}

// Normalize lowercases code and falls back to "usd" for anything unsupported.
func Normalize(code string) string {
	c := strings.ToLower(code)
	if !IsSupported(c) {
		return "usd"
	}
	return c
}

// Symbol returns the display symbol for a supported currency ("$" otherwise).
func Symbol(code string) string {
	if info, ok := Supported[strings.ToLower(code)]; ok {
		return info.Symbol
	}
	return "$"
}

// Rate returns the mock USD conversion multiplier (1 for unknown codes).
func Rate(code string) float64 {
	if r, ok := MockRates[strings.ToLower(code)]; ok {
		return r
	}
	return 1
}
