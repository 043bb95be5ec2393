package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/nlpvocab/types"
)

func TestWords_Tokenize(t *testing.T) {
	t.Parallel()

	tokens, err := Words{}.Tokenize([]string{"Test  Тест\tтест", "\n", "a\x1fb c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Test", "Тест", "тест", "a", "b", "c"}, tokens)
}

func TestChars_Tokenize(t *testing.T) {
	t.Parallel()

	tokens, err := Chars{}.Tokenize([]string{"ab ", "я\n"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", " ", "я", "\n"}, tokens)

	tokens, err = Chars{}.Tokenize(nil)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	names := Names()
	assert.Subset(t, names, []string{BPEName, CharsName, WordsName})

	tok, err := Get(WordsName, Options{})
	require.NoError(t, err)
	assert.Equal(t, WordsName, tok.Name())

	bpe, err := Get(BPEName, Options{BPEEncoding: "p50k_base"})
	require.NoError(t, err)
	assert.Equal(t, "bpe[p50k_base]", bpe.Name())

	_, err = Get("sentencepiece", Options{})
	assert.True(t, types.IsValidation(err))
}

type upper struct{}

func (upper) Name() string { return "upper" }

func (upper) Tokenize(docs []string) ([]string, error) {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = strings.ToUpper(d)
	}
	return out, nil
}

func TestRegister_Custom(t *testing.T) {
	t.Parallel()

	Register("upper", func(Options) (Tokenizer, error) { return upper{}, nil })

	tok, err := Get("upper", Options{})
	require.NoError(t, err)
	tokens, err := tok.Tokenize([]string{"ab"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AB"}, tokens)
	assert.Contains(t, Names(), "upper")
}

func TestNewBPE_DefaultEncoding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultBPEEncoding, NewBPE("").Encoding())
}

func TestBPE_UnknownEncoding(t *testing.T) {
	t.Parallel()

	_, err := NewBPE("no_such_encoding").Tokenize([]string{"hello"})
	assert.True(t, types.IsErrorCode(err, types.ErrTokenizerError))
}

func TestBPE_PiecesReassembleDocument(t *testing.T) {
	t.Parallel()

	tok := NewBPE(DefaultBPEEncoding)
	if err := tok.init(); err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}

	docs := []string{"hello world, hello tokens", "привет мир 中文"}
	pieces, err := tok.Tokenize(docs)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(docs, ""), strings.Join(pieces, ""))
	assert.Contains(t, pieces, " hello")
}
