// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once and shared; it caches struct
// metadata so repeated validation of request types is cheap. Field names in
// error messages come from the json tag, so clients see the same names they
// sent:
//
//	type PriceRequest struct {
//	    Title string `json:"title" validate:"max=500"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // respond 400 with apiErr.Code / apiErr.Message
//	}
//
// One custom tag is registered:
//
//   - printable: the string has no control characters. Titles and authors end
//     up in log lines and event payloads.
package validation
