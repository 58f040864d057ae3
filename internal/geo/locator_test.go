package geo

import "testing"

func TestParseProviderMember(t *testing.T) {
	id, err := parseProviderMember("provider:42")
	if err != nil {
		t.Fatalf("parseProviderMember: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}
	if _, err := parseProviderMember("bogus"); err == nil {
		t.Fatal("expected error for malformed member")
	}
	if _, err := parseProviderMember("provider:x"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
