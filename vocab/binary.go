package vocab

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

const (
	binaryMagic   = "NLPV"
	binaryVersion = uint16(1)

	maxTokenBytes = 1 << 20
)

// Wire format (version 1):
//
//	magic   = "NLPV"
//	version = uint16 little-endian
//	count   = uvarint number of entries
//	repeat count times:
//	  len   = uvarint token length in bytes
//	  token = len bytes, UTF-8
//	  freq  = uvarint count
//
// Entries are written in canonical order so equal vocabularies encode to
// identical bytes.
func writeBinary(w io.Writer, v *Vocabulary) error {
	bw := bufio.NewWriter(w)

	var header [6]byte
	copy(header[:4], binaryMagic)
	binary.LittleEndian.PutUint16(header[4:], binaryVersion)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	var scratch [binary.MaxVarintLen64]byte
	putUvarint := func(x uint64) error {
		n := binary.PutUvarint(scratch[:], x)
		_, err := bw.Write(scratch[:n])
		return err
	}

	entries := v.Entries()
	if err := putUvarint(uint64(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := putUvarint(uint64(len(e.Token))); err != nil {
			return err
		}
		if _, err := bw.WriteString(e.Token); err != nil {
			return err
		}
		if err := putUvarint(uint64(e.Count)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func readBinary(r io.Reader) (*Vocabulary, error) {
	br := bufio.NewReader(r)

	var header [6]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", noEOF(err))
	}
	if string(header[:4]) != binaryMagic {
		return nil, fmt.Errorf("bad magic %q", header[:4])
	}
	if version := binary.LittleEndian.Uint16(header[4:]); version != binaryVersion {
		return nil, fmt.Errorf("unsupported binary version %d", version)
	}

	count, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("read entry count: %w", noEOF(err))
	}

	v := &Vocabulary{counts: make(map[string]int64, min(count, 1<<16))}
	buf := make([]byte, 0, 64)
	for i := uint64(0); i < count; i++ {
		size, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, fmt.Errorf("entry %d: read token length: %w", i, noEOF(err))
		}
		if size > maxTokenBytes {
			return nil, fmt.Errorf("entry %d: token length %d exceeds limit", i, size)
		}
		buf = buf[:0]
		if cap(buf) < int(size) {
			buf = make([]byte, 0, size)
		}
		buf = buf[:size]
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("entry %d: read token: %w", i, noEOF(err))
		}
		if !utf8.Valid(buf) {
			return nil, fmt.Errorf("entry %d: token is not valid UTF-8", i)
		}
		freq, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, fmt.Errorf("entry %d: read count: %w", i, noEOF(err))
		}
		if freq == 0 || freq > math.MaxInt64 {
			return nil, fmt.Errorf("entry %d: count %d out of range", i, freq)
		}

		token := string(buf)
		if _, dup := v.counts[token]; dup {
			return nil, fmt.Errorf("entry %d: duplicate token %q", i, token)
		}
		v.counts[token] = int64(freq)
	}

	switch _, err := br.ReadByte(); {
	case err == nil:
		return nil, errors.New("trailing data after last entry")
	case err != io.EOF:
		return nil, err
	}
	return v, nil
}

// noEOF reports truncation as io.ErrUnexpectedEOF.
func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
