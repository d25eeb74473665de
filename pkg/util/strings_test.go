package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("got %d, want default 7", got)
	}
	if got := ParseIntDefault("not a number", 7); got != 7 {
		t.Fatalf("got %d, want default 7", got)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	cases := map[string]string{
		"LSK":       "lsk",
		"  BtcUsd ": "btcusd",
		"eth":       "eth",
	}
	for in, want := range cases {
		if got := NormalizeSymbol(in); got != want {
			t.Fatalf("NormalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}
