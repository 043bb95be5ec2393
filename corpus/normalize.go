package corpus

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/BaSui01/nlpvocab/types"
)

// Normalization selects the Unicode normal form applied to documents.
type Normalization string

const (
	NormNone Normalization = "NONE"
	NormNFC  Normalization = "NFC"
	NormNFKC Normalization = "NFKC"
	NormNFD  Normalization = "NFD"
	NormNFKD Normalization = "NFKD"
)

var normForms = map[Normalization]norm.Form{
	NormNFC:  norm.NFC,
	NormNFKC: norm.NFKC,
	NormNFD:  norm.NFD,
	NormNFKD: norm.NFKD,
}

// Normalizations lists the accepted values in display order.
func Normalizations() []Normalization {
	return []Normalization{NormNone, NormNFC, NormNFKC, NormNFD, NormNFKD}
}

// ParseNormalization parses a normalization name, case-insensitively.
// The empty string means NONE.
func ParseNormalization(s string) (Normalization, error) {
	n := Normalization(strings.ToUpper(strings.TrimSpace(s)))
	if n == "" {
		return NormNone, nil
	}
	if n == NormNone {
		return n, nil
	}
	if _, ok := normForms[n]; !ok {
		return "", types.Errorf(types.ErrValidation, "unknown unicode normalization %q", s)
	}
	return n, nil
}

// Apply returns s in the normal form n.
func (n Normalization) Apply(s string) string {
	form, ok := normForms[n]
	if !ok {
		return s
	}
	return form.String(s)
}
