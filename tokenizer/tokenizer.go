package tokenizer

import (
	"sort"
	"sync"

	"github.com/BaSui01/nlpvocab/types"
)

// Tokenizer splits a batch of documents into tokens.
type Tokenizer interface {
	// Name returns the registered name of the tokenizer.
	Name() string

	// Tokenize returns the tokens of all docs, in document order.
	Tokenize(docs []string) ([]string, error)
}

// Options carries the settings a Factory may need.
type Options struct {
	// BPEEncoding names the tiktoken encoding used by the bpe tokenizer.
	BPEEncoding string
}

// Factory builds a Tokenizer from Options.
type Factory func(opts Options) (Tokenizer, error)

// Global tokenizer registry.
var (
	factories   = make(map[string]Factory)
	factoriesMu sync.RWMutex
)

func init() {
	Register(WordsName, func(Options) (Tokenizer, error) { return Words{}, nil })
	Register(CharsName, func(Options) (Tokenizer, error) { return Chars{}, nil })
	Register(BPEName, func(opts Options) (Tokenizer, error) { return NewBPE(opts.BPEEncoding), nil })
}

// Register adds or replaces the factory for name.
func Register(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// Get builds the tokenizer registered under name.
func Get(name string, opts Options) (Tokenizer, error) {
	factoriesMu.RLock()
	f, ok := factories[name]
	factoriesMu.RUnlock()

	if !ok {
		return nil, types.Errorf(types.ErrValidation, "unknown tokenizer %q", name)
	}
	return f(opts)
}

// Names returns the registered tokenizer names, sorted.
func Names() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
