package engine

import (
	"errors"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

var moneySymbols = []string{"🎲", "🏦", "🍒", "🍓", "💰", "🏇", "🥹"}

func mustSymbols(t testing.TB, tokens ...string) SymbolSet {
	t.Helper()
	s, err := NewSymbolSet(tokens...)
	if err != nil {
		t.Fatalf("NewSymbolSet() failed: %v", err)
	}
	return s
}

func TestNewSymbolSet(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		wantErr bool
	}{
		{"single symbol", []string{"A"}, false},
		{"seven symbols", moneySymbols, false},
		{"empty", nil, true},
		{"duplicate", []string{"A", "B", "A"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSymbolSet(tc.tokens...)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("NewSymbolSet(%v) error = %v, expected ErrInvalidConfig", tc.tokens, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSymbolSet(%v) failed: %v", tc.tokens, err)
			}
			if s.Len() != len(tc.tokens) {
				t.Errorf("Len() = %d, expected %d", s.Len(), len(tc.tokens))
			}
		})
	}
}

func TestSymbolSetIsolatedFromCaller(t *testing.T) {
	tokens := []string{"A", "B", "C"}
	s := mustSymbols(t, tokens...)

	tokens[0] = "Z"
	if s.At(0) != "A" {
		t.Errorf("symbol set changed with caller slice: At(0) = %q", s.At(0))
	}

	out := s.Tokens()
	out[1] = "Z"
	if s.At(1) != "B" {
		t.Errorf("symbol set changed through Tokens(): At(1) = %q", s.At(1))
	}
}

func TestAlignMoneySymbols(t *testing.T) {
	s := mustSymbols(t, moneySymbols...)

	got, err := s.Align(3)
	if err != nil {
		t.Fatalf("Align(3) failed: %v", err)
	}
	if got[len(got)/2] != "🍓" {
		t.Errorf("middle symbol = %q, expected 🍓", got[len(got)/2])
	}
	if !slices.Equal(got, moneySymbols) {
		t.Errorf("Align(3) = %v, expected the unrotated set", got)
	}

	got, err = s.Align(0)
	if err != nil {
		t.Fatalf("Align(0) failed: %v", err)
	}
	expected := []string{"💰", "🏇", "🥹", "🎲", "🏦", "🍒", "🍓"}
	if !slices.Equal(got, expected) {
		t.Errorf("Align(0) = %v, expected %v", got, expected)
	}
}

func TestAlignEvenLength(t *testing.T) {
	s := mustSymbols(t, "A", "B", "C", "D")

	for center := 0; center < s.Len(); center++ {
		got := s.MustAlign(center)
		if got[2] != s.At(center) {
			t.Errorf("Align(%d)[2] = %q, expected %q", center, got[2], s.At(center))
		}
	}
}

func TestAlignInvalidIndex(t *testing.T) {
	s := mustSymbols(t, moneySymbols...)

	for _, center := range []int{-1, 7, 100} {
		if _, err := s.Align(center); !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("Align(%d) error = %v, expected ErrInvalidIndex", center, err)
		}
	}
}

func TestMustAlignPanics(t *testing.T) {
	s := mustSymbols(t, "A", "B")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustAlign(5) should panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("panic value = %v, expected ErrInvalidIndex", r)
		}
	}()
	s.MustAlign(5)
}

func TestAlignProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 24).Draw(t, "n")
		center := rapid.IntRange(0, n-1).Draw(t, "center")

		tokens := make([]string, n)
		for i := range tokens {
			tokens[i] = string(rune('A' + i))
		}
		s, err := NewSymbolSet(tokens...)
		if err != nil {
			t.Fatalf("NewSymbolSet() failed: %v", err)
		}

		got, err := s.Align(center)
		if err != nil {
			t.Fatalf("Align(%d) failed: %v", center, err)
		}
		if len(got) != n {
			t.Fatalf("len = %d, expected %d", len(got), n)
		}
		if got[n/2] != tokens[center] {
			t.Fatalf("middle = %q, expected %q", got[n/2], tokens[center])
		}

		// Rotation: consecutive elements follow the original cyclic order.
		start := slices.Index(tokens, got[0])
		for i := range got {
			if got[i] != tokens[(start+i)%n] {
				t.Fatalf("not a rotation: %v of %v", got, tokens)
			}
		}

		again, _ := s.Align(center)
		if !slices.Equal(got, again) {
			t.Fatalf("Align not deterministic: %v vs %v", got, again)
		}
	})
}

// For an odd number of symbols the rotation equals the classic
// (center + n/2) % n + 1 offset.
func TestAlignMatchesClassicOffsetForOddSets(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := 2*rapid.IntRange(0, 11).Draw(t, "half") + 1
		center := rapid.IntRange(0, n-1).Draw(t, "center")

		tokens := make([]string, n)
		for i := range tokens {
			tokens[i] = string(rune('a' + i))
		}
		s, _ := NewSymbolSet(tokens...)

		offset := (center+n/2)%n + 1
		classic := append(slices.Clone(tokens[offset:]), tokens[:offset]...)

		if got := s.MustAlign(center); !slices.Equal(got, classic) {
			t.Fatalf("Align(%d) = %v, classic = %v", center, got, classic)
		}
	})
}

func TestResolve(t *testing.T) {
	s := mustSymbols(t, moneySymbols...)

	got := s.Resolve(OutcomeVector{0, 6, 3})
	expected := []string{"🎲", "🥹", "🍓"}
	if !slices.Equal(got, expected) {
		t.Errorf("Resolve() = %v, expected %v", got, expected)
	}
}
