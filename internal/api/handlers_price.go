// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package api

import (
	"net/http"

	"github.com/tomtom215/bookmarket/internal/validation"
)

// PredictPrice quotes a resale price for a listing.
func (h *Handler) PredictPrice(w http.ResponseWriter, r *http.Request) {
	var body PredictPriceRequest
	if !decodeJSONBody(w, r, &body) {
		return
	}
	if verr := validation.ValidateStruct(&body); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	req := body.PriceRequest()
	quote := h.pricer.Quote(r.Context(), req)
	h.emitter.PriceQuoted(r.Context(), req, quote)

	respondJSON(w, r, http.StatusOK, PredictPriceResponse{PredictedPrice: quote.Price})
}
