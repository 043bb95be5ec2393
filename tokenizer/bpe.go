package tokenizer

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/BaSui01/nlpvocab/types"
)

// DefaultBPEEncoding is used when no encoding is configured.
const DefaultBPEEncoding = "cl100k_base"

// BPE tokenizes with a tiktoken byte-pair encoding and emits the decoded
// text of each piece.
type BPE struct {
	encoding string
	enc      *tiktoken.Tiktoken
	once     sync.Once
	initErr  error
}

// NewBPE returns a BPE tokenizer for the named tiktoken encoding. The
// encoding is loaded on first use.
func NewBPE(encoding string) *BPE {
	if encoding == "" {
		encoding = DefaultBPEEncoding
	}
	return &BPE{encoding: encoding}
}

// init lazily loads the encoding (may download ranks on first use).
func (t *BPE) init() error {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = types.Errorf(types.ErrTokenizerError, "init tiktoken encoding %s", t.encoding).WithCause(err)
			return
		}
		t.enc = enc
	})
	return t.initErr
}

func (t *BPE) Name() string {
	return fmt.Sprintf("%s[%s]", BPEName, t.encoding)
}

// Encoding returns the tiktoken encoding name.
func (t *BPE) Encoding() string { return t.encoding }

func (t *BPE) Tokenize(docs []string) ([]string, error) {
	if err := t.init(); err != nil {
		return nil, err
	}

	var tokens []string
	for _, doc := range docs {
		tokens = t.pieces(tokens, t.enc.Encode(doc, nil, nil))
	}
	return tokens, nil
}

// pieces decodes ids one by one. Byte-level pieces that split a multi-byte
// rune are joined with their successors until the text is valid UTF-8.
func (t *BPE) pieces(dst []string, ids []int) []string {
	var pending strings.Builder
	for _, id := range ids {
		pending.WriteString(t.enc.Decode([]int{id}))
		if s := pending.String(); utf8.ValidString(s) {
			dst = append(dst, s)
			pending.Reset()
		}
	}
	if pending.Len() > 0 {
		dst = append(dst, strings.ToValidUTF8(pending.String(), string(utf8.RuneError)))
	}
	return dst
}
