// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package validation

import (
	"strings"
	"testing"
)

type queryFixture struct {
	UserID int    `query:"user_id" validate:"required,min=1"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
	Path   string `json:"path,omitempty" validate:"omitempty,oneof=hybrid cold_start"`
	Note   string `validate:"max=5"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      queryFixture
		wantFields []string
		wantMsg    string
	}{
		{name: "valid", input: queryFixture{UserID: 1, Limit: 10}},
		{name: "zero limit allowed", input: queryFixture{UserID: 7}},
		{name: "missing user", input: queryFixture{}, wantFields: []string{"user_id"}, wantMsg: "user_id is required"},
		{name: "negative user", input: queryFixture{UserID: -3}, wantFields: []string{"user_id"}, wantMsg: "user_id must be at least 1"},
		{name: "limit too large", input: queryFixture{UserID: 1, Limit: 101}, wantFields: []string{"limit"}, wantMsg: "limit must be at most 100"},
		{name: "json tag name", input: queryFixture{UserID: 1, Path: "random"}, wantFields: []string{"path"}, wantMsg: "path must be one of: hybrid cold_start"},
		{name: "struct field name", input: queryFixture{UserID: 1, Note: "too long"}, wantFields: []string{"Note"}, wantMsg: "Note must be at most 5 characters"},
		{name: "multiple", input: queryFixture{Limit: 500}, wantFields: []string{"user_id", "limit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			got := make([]string, 0, len(err.Errors()))
			for _, fe := range err.Errors() {
				got = append(got, fe.Field)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&queryFixture{UserID: 0})
	apiErr := single.ToAPIError()
	if apiErr.Code != CodeValidation {
		t.Errorf("Code = %q, want %q", apiErr.Code, CodeValidation)
	}
	if apiErr.Details["field"] != "user_id" {
		t.Errorf("Details[field] = %v, want user_id", apiErr.Details["field"])
	}

	multi := ValidateStruct(&queryFixture{Limit: 500}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v, want 2 entries", multi.Details["fields"])
	}
	if !strings.Contains(multi.Message, "; ") {
		t.Errorf("Message = %q, want joined messages", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q, want %q", empty.Message, "Validation failed")
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(42)
	if err == nil {
		t.Fatal("ValidateStruct(42) = nil, want error")
	}
	if err.Errors()[0].Field != "unknown" {
		t.Errorf("Field = %q, want unknown", err.Errors()[0].Field)
	}
}

func TestValidateVar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   int
		wantMsg string
	}{
		{"in range", 12, ""},
		{"lower bound", 1, ""},
		{"upper bound", 100, ""},
		{"zero", 0, "limit must be at least 1"},
		{"above max", 101, "limit must be at most 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateVar("limit", tt.value, "min=1,max=100")
			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("ValidateVar(%d) = %v, want nil", tt.value, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateVar(%d) = nil, want %q", tt.value, tt.wantMsg)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("ValidateVar(%d) = %q, want %q", tt.value, err.Error(), tt.wantMsg)
			}
			if err.Errors()[0].Field != "limit" {
				t.Errorf("Field = %q, want limit", err.Errors()[0].Field)
			}
		})
	}
}

func TestNewFieldError(t *testing.T) {
	t.Parallel()

	err := NewFieldError("user_id", "integer", "abc", "user_id must be an integer")
	apiErr := err.ToAPIError()
	if apiErr.Message != "user_id must be an integer" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "user_id must be an integer")
	}
	if apiErr.Details["value"] != "abc" {
		t.Errorf("Details[value] = %v, want abc", apiErr.Details["value"])
	}
}
