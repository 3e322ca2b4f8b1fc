// Package model holds the storefront documents, request payloads and domain errors.
package model

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals are rendered as JSON numbers wherever a model is encoded.
	decimal.MarshalJSONWithoutQuotes = true
}
