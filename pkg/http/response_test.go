package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "storefront/pkg/errors"
	"storefront/pkg/pagination"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestNewEnvelope(t *testing.T) {
	var nilProduct *struct{ Name string }
	var nilSlice []string
	var nilMap map[string]int

	tests := []struct {
		name    string
		success bool
		data    any
		message string
		errMsg  string
		want    string
	}{
		{"bare success", true, nil, "", "", `{"success":true}`},
		{"empty slice kept", true, []any{}, "ok", "", `{"success":true,"data":[],"message":"ok"}`},
		{"zero kept", true, 0, "", "", `{"success":true,"data":0}`},
		{"false kept", true, false, "", "", `{"success":true,"data":false}`},
		{"empty string kept", true, "", "", "", `{"success":true,"data":""}`},
		{"typed nil pointer dropped", true, nilProduct, "", "", `{"success":true}`},
		{"nil slice dropped", true, nilSlice, "", "", `{"success":true}`},
		{"nil map dropped", true, nilMap, "", "", `{"success":true}`},
		{"error only", false, nil, "", "Product not found", `{"success":false,"error":"Product not found"}`},
		{"message and data", true, map[string]string{"slug": "mens-shoes"}, "Created", "", `{"success":true,"data":{"slug":"mens-shoes"},"message":"Created"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := marshal(t, NewEnvelope(tt.success, tt.data, tt.message, tt.errMsg))
			if got != tt.want {
				t.Errorf("NewEnvelope() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteSuccess(rec, []string{"a"}); err != nil {
		t.Fatalf("WriteSuccess() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := rec.Body.String(); got != "{\"success\":true,\"data\":[\"a\"]}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestWriteCreatedAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = WriteCreated(rec, map[string]int{"id": 1}, "Category created")
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"success\":true,\"data\":{\"id\":1},\"message\":\"Category created\"}\n" {
		t.Errorf("body = %q", got)
	}

	rec = httptest.NewRecorder()
	_ = WriteMessage(rec, "Deleted")
	if got := rec.Body.String(); got != "{\"success\":true,\"message\":\"Deleted\"}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestWritePaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	var items []string
	_ = WritePaginated(rec, items, pagination.Calculate(2, 10, 35))

	var got struct {
		Success    bool            `json:"success"`
		Data       []string        `json:"data"`
		Pagination pagination.Info `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Success || got.Data == nil {
		t.Errorf("expected success with an empty data array, got %s", rec.Body.String())
	}
	want := pagination.Info{Page: 2, Limit: 10, Total: 35, TotalPages: 4}
	if got.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", got.Pagination, want)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        apperrors.NotFound("Product"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"error":"Product not found"}`,
		},
		{
			name: "validation with details",
			err: apperrors.Validation("Validation failed", []apperrors.FieldError{
				{Field: "name", Message: "required"},
			}),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"success":false,"error":"Validation failed","details":[{"field":"name","message":"required"}]}`,
		},
		{
			name:       "wrapped app error",
			err:        fmt.Errorf("handler: %w", apperrors.Unauthorized("Unauthorized")),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"success":false,"error":"Unauthorized"}`,
		},
		{
			name:       "plain error hides cause",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"error":"An unexpected error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			_ = WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Body.String(); got != tt.wantBody+"\n" {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
		})
	}
}

func TestExtractWindow(t *testing.T) {
	tests := []struct {
		url       string
		wantPage  int
		wantLimit int
	}{
		{"/api/products", 1, 10},
		{"/api/products?page=3&limit=20", 3, 20},
		{"/api/products?page=-1&limit=1000", 1, 100},
		{"/api/products?page=x&limit=0", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := ExtractWindow(httptest.NewRequest(http.MethodGet, tt.url, nil))
			if w.Page != tt.wantPage || w.Limit != tt.wantLimit {
				t.Errorf("ExtractWindow() = page %d limit %d, want %d %d", w.Page, w.Limit, tt.wantPage, tt.wantLimit)
			}
			if w.Skip != int64(tt.wantPage-1)*int64(tt.wantLimit) {
				t.Errorf("Skip = %d", w.Skip)
			}
		})
	}
}

func TestQueryFlag(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/products?featured=true&premium=1&custom=false", nil)

	if !QueryFlag(r, "featured") || !QueryFlag(r, "premium") {
		t.Error("expected featured and premium to be on")
	}
	if QueryFlag(r, "custom") || QueryFlag(r, "missing") {
		t.Error("expected custom and missing to be off")
	}
}
