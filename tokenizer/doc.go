// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

// Package tokenizer turns documents into token streams for counting.
// Built-in tokenizers are "words" (whitespace split), "chars" (one token per
// rune) and "bpe" (tiktoken byte-pair pieces). Additional tokenizers can be
// added with Register.
package tokenizer
