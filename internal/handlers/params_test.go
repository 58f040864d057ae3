package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestGetParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/providers/42?limit=10", nil)
	q := r.URL.Query()
	q.Set(":id", "42")
	r.URL.RawQuery = q.Encode()

	if got := getParam(r, "id"); got != "42" {
		t.Errorf("colon-prefixed param: got %q, want %q", got, "42")
	}
	if got := getParam(r, "limit"); got != "10" {
		t.Errorf("plain query param: got %q, want %q", got, "10")
	}
	if got := getParam(r, "missing"); got != "" {
		t.Errorf("missing param: got %q, want empty", got)
	}
}
