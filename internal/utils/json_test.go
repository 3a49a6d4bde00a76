package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSONRequest(t *testing.T) {
	var dst struct {
		Text string `json:"text"`
	}
	r := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"text":"1. e4"}`))
	if err := DecodeJSONRequest(r, &dst); err != nil || dst.Text != "1. e4" {
		t.Fatalf("DecodeJSONRequest = %v, %q", err, dst.Text)
	}

	r = httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"text":"1. e4","extra":1}`))
	if err := DecodeJSONRequest(r, &dst); err == nil {
		t.Fatalf("unknown fields must be rejected")
	}
}
