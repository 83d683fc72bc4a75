package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnwards/storefront/internal/api"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	data := map[string]string{"key": "value"}

	api.WriteJSON(rec, http.StatusOK, data)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var result map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result["key"] != "value" {
		t.Errorf("key = %q, want %q", result["key"], "value")
	}
}

func TestWriteJSONStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	api.WriteJSON(rec, http.StatusCreated, map[string]int{"id": 1})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"page": 3}`))
	var body struct {
		Page int `json:"page"`
	}
	if err := api.DecodeJSON(req, &body); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if body.Page != 3 {
		t.Errorf("page = %d, want 3", body.Page)
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	body := struct{ Page int }{Page: 7}
	if err := api.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", http.NoBody), &body); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if err := api.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &body); err != nil {
		t.Fatalf("DecodeJSON empty reader: %v", err)
	}
	if body.Page != 7 {
		t.Errorf("page = %d, want untouched 7", body.Page)
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	var body map[string]any
	if err := api.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &body); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
