// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

/*
Package vocab implements Vocabulary, a frequency table over tokens.

# Overview

A Vocabulary maps tokens (words, characters, BPE pieces) to occurrence
counts. Every inspection and persistence path goes through the canonical
order returned by Tokens: count descending, ties broken by ascending token
text. The order never depends on insertion order or map iteration.

# Arithmetic

Add, Subtract, Union and Intersect return new vocabularies and leave both
operands untouched. Add is associative and commutative, so per-worker
vocabularies can be folded in any order. Negate and Plus always fail with an
UNSUPPORTED_OPERATION error.

# Partitioning

SplitBySize keeps the first n tokens of the canonical order. SplitByFrequency
keeps tokens whose count reaches the threshold; thresholds below 2 keep
everything. Both return (kept, removed) and do not modify the receiver. Trim
is the in-place variant of SplitByFrequency.

# Persistence

	err := v.Save("vocab.tsv", vocab.FormatTSVWithHeaders)
	v2, err := vocab.Load("vocab.tsv", vocab.FormatTSVWithHeaders)

FormatBinary is a compact length-prefixed encoding. The TSV formats write one
"token<TAB>count" line per token, with whitespace inside tokens escaped as
\uXXXX so that tokens such as " " or "\t" survive a round trip. Unknown
formats are rejected before any file is touched.
*/
package vocab
