package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/BaSui01/nlpvocab/vocab"
)

// Registered names of the built-in tokenizers.
const (
	WordsName = "words"
	CharsName = "chars"
	BPEName   = "bpe"
)

// Words splits documents on runs of whitespace.
type Words struct{}

func (Words) Name() string { return WordsName }

func (Words) Tokenize(docs []string) ([]string, error) {
	var tokens []string
	for _, doc := range docs {
		tokens = append(tokens, strings.FieldsFunc(doc, vocab.IsSpace)...)
	}
	return tokens, nil
}

// Chars emits every rune of every document, whitespace included.
type Chars struct{}

func (Chars) Name() string { return CharsName }

func (Chars) Tokenize(docs []string) ([]string, error) {
	n := 0
	for _, doc := range docs {
		n += utf8.RuneCountInString(doc)
	}

	tokens := make([]string, 0, n)
	for _, doc := range docs {
		for _, r := range doc {
			tokens = append(tokens, string(r))
		}
	}
	return tokens, nil
}
