package sku

import "testing"

func TestExtractKey(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"ABC-100", "100"},
		{"XYZ-100", "100"},
		{"ABC-123-X-456", "123"},
		{"12345", "12345"},
		{"no digits here", ""},
		{"", ""},
		{"größe-42-rot", "42"},
		{"007bond", "007"},
	}

	for _, c := range cases {
		got := ExtractKey(c.raw)
		if got != c.want {
			t.Errorf("ExtractKey(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestExtractKeyIdempotent(t *testing.T) {
	inputs := []string{"ABC-100", "SKU 42 blue", "9981", "A1B2C3"}
	for _, raw := range inputs {
		key := ExtractKey(raw)
		if key == "" {
			continue
		}
		if again := ExtractKey(key); again != key {
			t.Errorf("ExtractKey(%q) = %q, but re-extracting gave %q", raw, key, again)
		}
	}
}

func TestKeyColumn(t *testing.T) {
	if got := KeyColumn([]string{"Handle", "Variant SKU", "Title"}); got != "Variant SKU" {
		t.Errorf("expected Variant SKU, got %q", got)
	}
	if got := KeyColumn([]string{"Handle", "SKU"}); got != "SKU" {
		t.Errorf("expected SKU, got %q", got)
	}
	// Variant SKU outranks SKU when both exist.
	if got := KeyColumn([]string{"SKU", "Variant SKU"}); got != "Variant SKU" {
		t.Errorf("expected Variant SKU to win, got %q", got)
	}
	if got := KeyColumn([]string{"Handle", "Title"}); got != "" {
		t.Errorf("expected no key column, got %q", got)
	}
}
