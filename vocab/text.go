package vocab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	headerToken     = "token"
	headerFrequency = "frequency"
)

func writeText(w io.Writer, v *Vocabulary, withHeaders bool) error {
	bw := bufio.NewWriter(w)

	if withHeaders {
		if _, err := bw.WriteString(headerToken + "\t" + headerFrequency + "\n"); err != nil {
			return err
		}
	}

	line := make([]byte, 0, 64)
	for _, e := range v.Entries() {
		line = append(line[:0], Escape(e.Token)...)
		line = append(line, '\t')
		line = strconv.AppendInt(line, e.Count, 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// readText parses TSV lines. Lines without exactly two tab-separated fields
// and lines whose count field is the header literal are skipped; the header
// check applies to both variants.
func readText(r io.Reader) (*Vocabulary, error) {
	br := bufio.NewReader(r)
	data := make(map[string]int64)

	for lineNo := 1; ; lineNo++ {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			if perr := parseLine(data, raw, lineNo); perr != nil {
				return nil, perr
			}
		}
		if err == io.EOF {
			return FromCounts(data)
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseLine stores one data line; a repeated token keeps the last count.
func parseLine(data map[string]int64, raw string, lineNo int) error {
	if !utf8.ValidString(raw) {
		return fmt.Errorf("line %d: invalid UTF-8", lineNo)
	}

	// A leading tab is the separator after an empty token.
	line := strings.TrimLeftFunc(strings.TrimRightFunc(raw, IsSpace), func(r rune) bool {
		return r != '\t' && IsSpace(r)
	})
	parts := strings.Split(line, "\t")
	if len(parts) != 2 || parts[1] == headerFrequency {
		return nil
	}

	n, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return fmt.Errorf("line %d: parse frequency %q: %w", lineNo, parts[1], err)
	}
	if n < 0 {
		return fmt.Errorf("line %d: negative frequency %d", lineNo, n)
	}

	data[Unescape(parts[0])] = n
	return nil
}
