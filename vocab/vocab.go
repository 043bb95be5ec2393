package vocab

import (
	"cmp"
	"slices"

	"github.com/BaSui01/nlpvocab/types"
)

// Entry is a token with its count.
type Entry struct {
	Token string `json:"token"`
	Count int64  `json:"count"`
}

// Vocabulary counts token occurrences.
//
// It is not safe for concurrent mutation. Count into one Vocabulary per
// goroutine and fold the results with Add.
type Vocabulary struct {
	counts map[string]int64
}

// New creates a vocabulary seeded by counting every given token.
func New(tokens ...string) *Vocabulary {
	v := &Vocabulary{counts: make(map[string]int64, len(tokens))}
	v.Update(tokens)
	return v
}

// FromCounts creates a vocabulary from explicit counts.
// Zero counts are skipped; negative counts are rejected.
func FromCounts(counts map[string]int64) (*Vocabulary, error) {
	v := &Vocabulary{counts: make(map[string]int64, len(counts))}
	if err := v.UpdateCounts(counts); err != nil {
		return nil, err
	}
	return v, nil
}

// Update increments the count of each token by one.
func (v *Vocabulary) Update(tokens []string) {
	v.ensure()
	for _, tok := range tokens {
		v.counts[tok]++
	}
}

// UpdateCounts adds explicit counts to the vocabulary.
// The receiver is left untouched when any count is negative.
func (v *Vocabulary) UpdateCounts(counts map[string]int64) error {
	for tok, n := range counts {
		if n < 0 {
			return types.Errorf(types.ErrValidation, "negative count %d for token %q", n, tok)
		}
	}
	v.ensure()
	for tok, n := range counts {
		if n == 0 {
			continue
		}
		v.counts[tok] += n
	}
	return nil
}

// Count returns the count of token, 0 when absent.
func (v *Vocabulary) Count(token string) int64 {
	if v == nil {
		return 0
	}
	return v.counts[token]
}

// Contains reports whether token has a positive count.
func (v *Vocabulary) Contains(token string) bool {
	return v.Count(token) > 0
}

// Len returns the number of distinct tokens.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.counts)
}

// Total returns the sum of all counts.
func (v *Vocabulary) Total() int64 {
	var total int64
	if v == nil {
		return total
	}
	for _, n := range v.counts {
		total += n
	}
	return total
}

// Clone returns an independent copy.
func (v *Vocabulary) Clone() *Vocabulary {
	c := &Vocabulary{counts: make(map[string]int64, v.Len())}
	if v == nil {
		return c
	}
	for tok, n := range v.counts {
		c.counts[tok] = n
	}
	return c
}

// Equal reports whether both vocabularies hold the same (token, count) pairs.
func (v *Vocabulary) Equal(other *Vocabulary) bool {
	if v.Len() != other.Len() {
		return false
	}
	if v == nil || other == nil {
		return true
	}
	for tok, n := range v.counts {
		if other.counts[tok] != n {
			return false
		}
	}
	return true
}

// Tokens returns the distinct tokens in canonical order: count descending,
// ties broken by ascending token text.
func (v *Vocabulary) Tokens() []string {
	entries := v.Entries()
	tokens := make([]string, len(entries))
	for i, e := range entries {
		tokens[i] = e.Token
	}
	return tokens
}

// Entries returns the (token, count) pairs in canonical order.
func (v *Vocabulary) Entries() []Entry {
	entries := make([]Entry, 0, v.Len())
	if v == nil {
		return entries
	}
	for tok, n := range v.counts {
		entries = append(entries, Entry{Token: tok, Count: n})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		// Byte order on valid UTF-8 is code point order.
		return cmp.Compare(a.Token, b.Token)
	})
	return entries
}

// MostCommon returns the first n entries in canonical order.
// n <= 0 returns every entry.
func (v *Vocabulary) MostCommon(n int) []Entry {
	entries := v.Entries()
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

func (v *Vocabulary) ensure() {
	if v.counts == nil {
		v.counts = make(map[string]int64)
	}
}

// set stores a positive count; callers guarantee n > 0.
func (v *Vocabulary) set(token string, n int64) {
	v.ensure()
	v.counts[token] = n
}
