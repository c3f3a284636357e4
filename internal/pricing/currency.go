// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/bookmarket/internal/models"
)

// Book conditions, best first.
const (
	ConditionNew        = "New"
	ConditionLikeNew    = "Like New"
	ConditionVeryGood   = "Very Good"
	ConditionGood       = "Good"
	ConditionAcceptable = "Acceptable"
	ConditionPoor       = "Poor"
)

// Conditions lists every known condition, best first.
var Conditions = []string{
	ConditionNew,
	ConditionLikeNew,
	ConditionVeryGood,
	ConditionGood,
	ConditionAcceptable,
	ConditionPoor,
}

var conditionFactors = map[string]decimal.Decimal{
	ConditionNew:        decimal.NewFromInt(1),
	ConditionLikeNew:    decimal.RequireFromString("0.9"),
	ConditionVeryGood:   decimal.RequireFromString("0.8"),
	ConditionGood:       decimal.RequireFromString("0.7"),
	ConditionAcceptable: decimal.RequireFromString("0.5"),
	ConditionPoor:       decimal.RequireFromString("0.3"),
}

// unknownConditionFactor applies to condition strings not in Conditions.
var unknownConditionFactor = decimal.RequireFromString("0.7")

// ConditionFactor returns the share of the listed price a copy in the given
// condition is worth. Matching is exact.
func ConditionFactor(condition string) decimal.Decimal {
	if f, ok := conditionFactors[condition]; ok {
		return f
	}
	return unknownConditionFactor
}

// KnownCondition reports whether condition is one of Conditions.
func KnownCondition(condition string) bool {
	_, ok := conditionFactors[condition]
	return ok
}

var inrRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(83),
	"EUR": decimal.NewFromInt(90),
	"GBP": decimal.NewFromInt(106),
}

// defaultINRRate converts any currency without a known rate.
var defaultINRRate = decimal.NewFromInt(83)

// ToINR converts amount in currency to INR using fixed approximate rates.
// An empty currency is taken to be INR.
func ToINR(amount decimal.Decimal, currency string) decimal.Decimal {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" || code == models.ReferenceCurrency {
		return amount
	}
	if rate, ok := inrRates[code]; ok {
		return amount.Mul(rate)
	}
	return amount.Mul(defaultINRRate)
}

// Round2 rounds x to two decimal places, half away from zero.
func Round2(x float64) float64 {
	return roundPlaces(x, 2)
}

func roundPlaces(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}
