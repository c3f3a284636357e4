// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package validation

import (
	"strings"
	"testing"
)

type listingRequest struct {
	Title     string `json:"title" validate:"required,max=20,printable"`
	Condition string `json:"condition,omitempty" validate:"omitempty,oneof=New Good Poor"`
	Count     int    `json:"num_recommendations" validate:"gte=0,lte=100"`
	Internal  string `json:"-" validate:"max=3"`
	NoTag     int    `validate:"min=1"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	valid := listingRequest{Title: "Dune", Count: 5, NoTag: 1}

	tests := []struct {
		name      string
		mutate    func(r *listingRequest)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*listingRequest) {}},
		{"missing title", func(r *listingRequest) { r.Title = "" }, "title", "required", "title is required"},
		{"title too long", func(r *listingRequest) { r.Title = strings.Repeat("x", 21) }, "title", "max", "title must be at most 20 characters"},
		{"control chars", func(r *listingRequest) { r.Title = "Dune\nFAKE LOG" }, "title", "printable", "title must not contain control characters"},
		{"bad condition", func(r *listingRequest) { r.Condition = "Mint" }, "condition", "oneof", "condition must be one of: New Good Poor"},
		{"negative count", func(r *listingRequest) { r.Count = -1 }, "num_recommendations", "gte", "num_recommendations must be greater than or equal to 0"},
		{"count too large", func(r *listingRequest) { r.Count = 101 }, "num_recommendations", "lte", "num_recommendations must be less than or equal to 100"},
		{"untagged field uses go name", func(r *listingRequest) { r.NoTag = 0 }, "NoTag", "min", "NoTag must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			verr := ValidateStruct(&req)
			if tt.wantTag == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&listingRequest{Title: "", Count: 1, NoTag: 1})
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" || apiErr.Message != "title is required" {
		t.Errorf("single = %+v", apiErr)
	}
	if apiErr.Details["field"] != "title" {
		t.Errorf("details = %v", apiErr.Details)
	}

	multi := ValidateStruct(&listingRequest{Title: "", Count: -1, NoTag: 1})
	apiErr = multi.ToAPIError()
	if !strings.Contains(apiErr.Message, "title: title is required") ||
		!strings.Contains(apiErr.Message, "num_recommendations:") {
		t.Errorf("multi message = %q", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("fields = %v", apiErr.Details["fields"])
	}

	empty := &RequestValidationError{}
	if empty.Error() != "validation failed" || empty.ToAPIError().Message != "Validation failed" {
		t.Errorf("empty error = %q / %+v", empty.Error(), empty.ToAPIError())
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	verr := ValidateStruct("not a struct")
	if verr == nil || verr.Errors()[0].Field() != "unknown" {
		t.Errorf("ValidateStruct(string) = %v", verr)
	}
}
