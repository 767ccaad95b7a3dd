package engine

import "fmt"

// SymbolSet is an ordered, fixed sequence of distinct display tokens.
// It is immutable once built; copies share the same backing array safely
// because nothing writes to it.
type SymbolSet struct {
	tokens []string
}

// NewSymbolSet builds a symbol set from the given tokens.
// At least one token is required and tokens must be distinct.
func NewSymbolSet(tokens ...string) (SymbolSet, error) {
	if len(tokens) == 0 {
		return SymbolSet{}, fmt.Errorf("%w: symbol set is empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			return SymbolSet{}, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidConfig, t)
		}
		seen[t] = struct{}{}
	}
	owned := make([]string, len(tokens))
	copy(owned, tokens)
	return SymbolSet{tokens: owned}, nil
}

// Len returns the number of symbols.
func (s SymbolSet) Len() int {
	return len(s.tokens)
}

// At returns the symbol at index i. It panics if i is out of range.
func (s SymbolSet) At(i int) string {
	return s.tokens[i]
}

// Tokens returns a copy of the symbols in order.
func (s SymbolSet) Tokens() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Resolve maps an outcome vector to its symbols.
func (s SymbolSet) Resolve(v OutcomeVector) []string {
	out := make([]string, len(v))
	for i, idx := range v {
		out[i] = s.tokens[idx]
	}
	return out
}

// Align returns the rotation of the symbol set that puts the symbol at
// center in the middle position (index Len()/2). The result has Len()
// elements and is a fresh slice.
func (s SymbolSet) Align(center int) ([]string, error) {
	n := len(s.tokens)
	if center < 0 || center >= n {
		return nil, fmt.Errorf("%w: center %d not in [0, %d)", ErrInvalidIndex, center, n)
	}

	// Rotate left by offset so that out[n/2] == tokens[center].
	offset := ((center-n/2)%n + n) % n

	out := make([]string, 0, n)
	out = append(out, s.tokens[offset:]...)
	out = append(out, s.tokens[:offset]...)
	return out, nil
}

// MustAlign is Align for callers that only pass indices produced by the
// machine itself. It panics on an invalid index.
func (s SymbolSet) MustAlign(center int) []string {
	out, err := s.Align(center)
	if err != nil {
		panic(err)
	}
	return out
}
