package vocab

import (
	"strings"

	"github.com/BaSui01/nlpvocab/types"
)

// Format selects a persistence encoding.
type Format string

const (
	// FormatBinary is the compact binary encoding.
	FormatBinary Format = "BINARY"
	// FormatTSVWithHeaders writes a "token\tfrequency" header line before the data.
	FormatTSVWithHeaders Format = "TSV_WITH_HEADERS"
	// FormatTSVWithoutHeaders writes data lines only.
	FormatTSVWithoutHeaders Format = "TSV_WITHOUT_HEADERS"

	// DefaultFormat is used by library callers that have no preference.
	DefaultFormat = FormatBinary
)

// legacy names accepted by ParseFormat
var formatAliases = map[string]Format{
	"BINARY_PICKLE": FormatBinary,
}

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatBinary, FormatTSVWithHeaders, FormatTSVWithoutHeaders}
}

// Validate returns a validation error for unknown formats.
func (f Format) Validate() error {
	switch f {
	case FormatBinary, FormatTSVWithHeaders, FormatTSVWithoutHeaders:
		return nil
	default:
		return types.Errorf(types.ErrValidation, "unsupported format %q", string(f))
	}
}

// IsText reports whether f is one of the TSV variants.
func (f Format) IsText() bool {
	return f == FormatTSVWithHeaders || f == FormatTSVWithoutHeaders
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if f, ok := formatAliases[upper]; ok {
		return f, nil
	}
	f := Format(upper)
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}
