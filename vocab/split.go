package vocab

// SplitBySize keeps the first n tokens of the canonical order and moves the
// rest to removed. The receiver is not modified.
func (v *Vocabulary) SplitBySize(n int) (kept, removed *Vocabulary) {
	if n >= v.Len() {
		return v.Clone(), New()
	}
	if n < 0 {
		n = 0
	}

	kept, removed = New(), New()
	for i, e := range v.Entries() {
		if i < n {
			kept.set(e.Token, e.Count)
		} else {
			removed.set(e.Token, e.Count)
		}
	}
	return kept, removed
}

// SplitByFrequency keeps tokens with count >= minFreq and moves the rest to
// removed. Thresholds below 2 keep everything, since every stored token has
// count >= 1. The receiver is not modified.
func (v *Vocabulary) SplitByFrequency(minFreq int64) (kept, removed *Vocabulary) {
	if minFreq < 2 {
		return v.Clone(), New()
	}

	kept, removed = New(), New()
	if v == nil {
		return kept, removed
	}
	for tok, n := range v.counts {
		if n >= minFreq {
			kept.set(tok, n)
		} else {
			removed.set(tok, n)
		}
	}
	return kept, removed
}

// Trim drops tokens with count < minFreq from the receiver in place and
// returns them as a new vocabulary.
func (v *Vocabulary) Trim(minFreq int64) *Vocabulary {
	removed := New()
	if v == nil {
		return removed
	}
	for tok, n := range v.counts {
		if n < minFreq {
			removed.set(tok, n)
			delete(v.counts, tok)
		}
	}
	return removed
}
