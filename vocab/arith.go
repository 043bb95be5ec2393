package vocab

import "github.com/BaSui01/nlpvocab/types"

// Add returns a new vocabulary whose counts are the sums of both operands.
func (v *Vocabulary) Add(other *Vocabulary) *Vocabulary {
	result := v.Clone()
	if other == nil {
		return result
	}
	for tok, n := range other.counts {
		if n > 0 {
			result.counts[tok] += n
		}
	}
	return result
}

// Merge adds the counts of other into v in place. It is the mutating form
// of Add, used to fold partial counts without copying the accumulator.
func (v *Vocabulary) Merge(other *Vocabulary) {
	if other == nil {
		return
	}
	if other == v {
		for tok, n := range v.counts {
			v.counts[tok] = 2 * n
		}
		return
	}
	v.ensure()
	for tok, n := range other.counts {
		if n > 0 {
			v.counts[tok] += n
		}
	}
}

// Subtract returns max(0, left-right) per token, dropping tokens that reach 0.
func (v *Vocabulary) Subtract(other *Vocabulary) *Vocabulary {
	result := New()
	if v == nil {
		return result
	}
	for tok, n := range v.counts {
		if diff := n - other.Count(tok); diff > 0 {
			result.set(tok, diff)
		}
	}
	return result
}

// Union returns max(left, right) per token present in either operand.
func (v *Vocabulary) Union(other *Vocabulary) *Vocabulary {
	result := v.Clone()
	if other == nil {
		return result
	}
	for tok, n := range other.counts {
		if n > result.counts[tok] {
			result.counts[tok] = n
		}
	}
	return result
}

// Intersect returns min(left, right) per token present in both operands.
func (v *Vocabulary) Intersect(other *Vocabulary) *Vocabulary {
	result := New()
	if v == nil || other == nil {
		return result
	}
	for tok, n := range v.counts {
		if m := other.counts[tok]; m < n {
			n = m
		}
		if n > 0 {
			result.set(tok, n)
		}
	}
	return result
}

// Negate is not supported: counts cannot go negative.
func (v *Vocabulary) Negate() (*Vocabulary, error) {
	return nil, types.NewError(types.ErrUnsupportedOperation, "vocabulary does not support unary negation")
}

// Plus is not supported: it would silently drop or keep tokens depending on sign.
func (v *Vocabulary) Plus() (*Vocabulary, error) {
	return nil, types.NewError(types.ErrUnsupportedOperation, "vocabulary does not support unary plus")
}
