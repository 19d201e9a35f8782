// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

type strategyRequest struct {
	Name     string   `json:"name" validate:"required,slug,max=32"`
	UserID   string   `json:"user_id" validate:"omitempty,notblank,max=128"`
	Limit    int      `json:"limit" validate:"omitempty,min=1,max=100"`
	Halaqas  []string `json:"halaqa_ids" validate:"omitempty,max=3,dive,required,max=16"`
	Mode     string   `json:"mode" validate:"omitempty,oneof=combined personalized"`
	Internal string   `json:"-"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     strategyRequest
		wantField string
		wantTag   string
	}{
		{name: "valid minimal", input: strategyRequest{Name: "tag"}},
		{name: "valid full", input: strategyRequest{
			Name: "editorial_v2", UserID: "u1", Limit: 100,
			Halaqas: []string{"h1", "h2"}, Mode: "personalized",
		}},
		{name: "missing name", input: strategyRequest{}, wantField: "name", wantTag: "required"},
		{name: "upper-case name", input: strategyRequest{Name: "Tag"}, wantField: "name", wantTag: "slug"},
		{name: "name with space", input: strategyRequest{Name: "tag x"}, wantField: "name", wantTag: "slug"},
		{name: "blank user", input: strategyRequest{Name: "tag", UserID: "   "}, wantField: "user_id", wantTag: "notblank"},
		{name: "limit too large", input: strategyRequest{Name: "tag", Limit: 101}, wantField: "limit", wantTag: "max"},
		{name: "too many halaqas", input: strategyRequest{Name: "tag", Halaqas: []string{"a", "b", "c", "d"}}, wantField: "halaqa_ids", wantTag: "max"},
		{name: "empty halaqa id", input: strategyRequest{Name: "tag", Halaqas: []string{"a", ""}}, wantField: "halaqa_ids[1]", wantTag: "required"},
		{name: "bad mode", input: strategyRequest{Name: "tag", Mode: "random"}, wantField: "mode", wantTag: "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateStruct() = nil, want %s failure on %s", tt.wantTag, tt.wantField)
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("got %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_NotAStruct(t *testing.T) {
	t.Parallel()

	err := ValidateStruct("not a struct")
	if err == nil {
		t.Fatal("expected an error for a non-struct")
	}
	if err.Errors()[0].Field() != "unknown" {
		t.Errorf("Field() = %q, want unknown", err.Errors()[0].Field())
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single error keeps its message", func(t *testing.T) {
		t.Parallel()
		err := ValidateStruct(&strategyRequest{Name: "tag", Limit: 500})
		if err == nil {
			t.Fatal("expected validation error")
		}
		apiErr := err.ToAPIError()
		if apiErr.Code != ErrorCode {
			t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
		}
		if apiErr.Message != "limit must be at most 100" {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if apiErr.Details["field"] != "limit" {
			t.Errorf("Details[field] = %v, want limit", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors are listed", func(t *testing.T) {
		t.Parallel()
		err := ValidateStruct(&strategyRequest{UserID: " ", Limit: -1})
		if err == nil {
			t.Fatal("expected validation error")
		}
		apiErr := err.ToAPIError()
		for _, want := range []string{"name: name is required", "user_id: user_id must not be blank"} {
			if !strings.Contains(apiErr.Message, want) {
				t.Errorf("Message %q missing %q", apiErr.Message, want)
			}
		}
		fields, ok := apiErr.Details["fields"].([]map[string]any)
		if !ok || len(fields) != len(err.Errors()) {
			t.Errorf("Details[fields] = %v", apiErr.Details["fields"])
		}
	})

	t.Run("empty error", func(t *testing.T) {
		t.Parallel()
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	type limits struct {
		Title string   `json:"title" validate:"min=3"`
		Tags  []string `json:"tags" validate:"max=1"`
		Score int      `json:"score" validate:"gte=0"`
	}

	err := ValidateStruct(&limits{Title: "ab", Tags: []string{"a", "b"}, Score: -1})
	if err == nil {
		t.Fatal("expected validation error")
	}
	got := err.Error()
	for _, want := range []string{
		"title must be at least 3 characters",
		"tags must be at most 1 items",
		"score must be greater than or equal to 0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}
