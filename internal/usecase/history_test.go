package usecase

import (
	"testing"
	"time"
)

func TestPriceBookWindowOldestFirst(t *testing.T) {
	b := NewPriceBook(10)
	now := time.Now()
	for i, p := range []float64{1, 2, 3, 4} {
		b.Append("LSK", p, 10, now.Add(time.Duration(i)*time.Second))
	}

	got := b.Window("LSK", 3)
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("window len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("window = %v, want %v", got, want)
		}
	}

	// n beyond the series returns everything
	if all := b.Window("LSK", 100); len(all) != 4 {
		t.Fatalf("oversized window len = %d, want 4", len(all))
	}
}

func TestPriceBookEviction(t *testing.T) {
	b := NewPriceBook(3)
	now := time.Now()
	for i := 1; i <= 5; i++ {
		b.Append("lsk", float64(i), 1, now)
	}

	got := b.Window("lsk", 0)
	want := []float64{3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after eviction window = %v, want %v", got, want)
		}
	}
	if b.Size("lsk") != 3 {
		t.Fatalf("size = %d, want 3", b.Size("lsk"))
	}
}

func TestPriceBookSymbolNormalization(t *testing.T) {
	b := NewPriceBook(10)
	b.Append("LSK", 42, 1, time.Now())

	last, ok := b.Last("lsk")
	if !ok || last != 42 {
		t.Fatalf("Last(lsk) = %f/%v, want 42/true", last, ok)
	}
	b.Append("lsk", 43, 1, time.Now())
	if b.Size("LSK") != 2 {
		t.Fatal("casing should not split a symbol's series")
	}
}

func TestPriceBookLastEmpty(t *testing.T) {
	b := NewPriceBook(10)
	if _, ok := b.Last("unknown"); ok {
		t.Fatal("Last on an empty series should report no price")
	}
}

func TestPriceBookCopyIsolation(t *testing.T) {
	b := NewPriceBook(2)
	b.Append("lsk", 1, 1, time.Now())
	b.Append("lsk", 2, 1, time.Now())

	w := b.Window("lsk", 0)
	b.Append("lsk", 3, 1, time.Now())
	if w[0] != 1 || w[1] != 2 {
		t.Fatalf("window mutated by later append: %v", w)
	}
}
