package vocab

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/nlpvocab/types"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "vocab.out")
			v1 := New(sampleTokens...)
			require.NoError(t, v1.Save(path, format))

			v2, err := Load(path, format)
			require.NoError(t, err)
			assert.Equal(t, v1.Tokens(), v2.Tokens())
			assert.True(t, v1.Equal(v2))

			trimmed, _ := v1.SplitByFrequency(2)
			assert.NotEqual(t, trimmed.Tokens(), v2.Tokens())
		})
	}
}

func TestSave_TSVWithHeaders_ExactBytes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vocab.tsv")
	v := New("1", " ", "2", " ", "1", "\n", "2", "\t", "а", ".")
	require.NoError(t, v.Save(path, FormatTSVWithHeaders))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := "token\tfrequency\n\\u0020\t2\n1\t2\n2\t2\n\\u0009\t1\n\\u000a\t1\n.\t1\nа\t1\n"
	assert.Equal(t, expected, string(data))

	loaded, err := Load(path, FormatTSVWithHeaders)
	require.NoError(t, err)
	assert.Equal(t, v.Tokens(), loaded.Tokens())
}

func TestSave_TSVWithoutHeaders(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, New(" ", " ", "x").Encode(&buf, FormatTSVWithoutHeaders))
	assert.Equal(t, "\\u0020\t2\nx\t1\n", buf.String())
}

func TestSave_EmptyVocabulary(t *testing.T) {
	t.Parallel()

	for _, format := range Formats() {
		path := filepath.Join(t.TempDir(), "empty")
		require.NoError(t, New().Save(path, format))

		loaded, err := Load(path, format)
		require.NoError(t, err)
		assert.Equal(t, 0, loaded.Len())
	}
}

func TestSave_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.bin")
	require.NoError(t, New("a", "b").Save(path, FormatBinary))
	require.NoError(t, New("c").Save(path, FormatBinary))

	loaded, err := Load(path, FormatBinary)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, loaded.Tokens())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSaveLoad_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.xml")

	err := New("a").Save(path, Format("XML"))
	assert.True(t, types.IsValidation(err))
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no file may be created")

	_, err = Load(filepath.Join(dir, "missing"), Format("XML"))
	assert.True(t, types.IsValidation(err), "format is checked before the file is opened")
}

func TestSaveEncode_RejectInvalidUTF8Token(t *testing.T) {
	t.Parallel()

	v := New("\xff", "a")
	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := v.Encode(&buf, format)
			assert.True(t, types.IsValidation(err))
			assert.Zero(t, buf.Len(), "nothing may be written")

			dir := t.TempDir()
			path := filepath.Join(dir, "vocab.out")
			err = v.Save(path, format)
			assert.True(t, types.IsValidation(err))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "no file or temporary file may be left")
		})
	}
}

func TestSaveLoad_EmptyTokenRoundTrips(t *testing.T) {
	t.Parallel()

	v := New("", "", "a")
	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "vocab.out")
			require.NoError(t, v.Save(path, format))

			loaded, err := Load(path, format)
			require.NoError(t, err)
			assert.Equal(t, []string{"", "a"}, loaded.Tokens())
			assert.Equal(t, int64(2), loaded.Count(""))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.tsv"), FormatTSVWithHeaders)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrIO))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSave_MissingDirectory(t *testing.T) {
	t.Parallel()

	err := New("a").Save(filepath.Join(t.TempDir(), "no", "such", "dir", "v.bin"), FormatBinary)
	assert.True(t, types.IsErrorCode(err, types.ErrIO))
}

func TestDecode_TextSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"token\tfrequency",
		"a\t3",
		"single-field",
		"x\ty\tz",
		"",
		"b\t1",
		"token\tfrequency",
	}, "\n")

	v, err := Decode(strings.NewReader(input), FormatTSVWithoutHeaders)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Tokens())
	assert.Equal(t, int64(3), v.Count("a"))
}

func TestDecode_TextLastCountWins(t *testing.T) {
	t.Parallel()

	v, err := Decode(strings.NewReader("a\t3\na\t5\n\\u0020\t1\n \t2\r\n"), FormatTSVWithHeaders)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.Count("a"))
	assert.Equal(t, int64(1), v.Count(" "))
	assert.Equal(t, int64(2), v.Count(""), "leading spaces are stripped, the tab is kept")
}

func TestDecode_TextUnescapesUpperCaseHex(t *testing.T) {
	t.Parallel()

	v, err := Decode(strings.NewReader("a\\u000Ab\t4\n"), FormatTSVWithHeaders)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.Count("a\nb"))
}

func TestDecode_TextBadFrequency(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"a\tmany\n", "a\t-1\n", "a\t1.5\n"} {
		_, err := Decode(strings.NewReader(line), FormatTSVWithHeaders)
		assert.True(t, types.IsErrorCode(err, types.ErrIO), "line %q", line)
	}
}

func TestEncode_BinaryIsDeterministic(t *testing.T) {
	t.Parallel()

	forward := New("a", "b", "c", "a", "d", "e")
	backward := New("e", "d", "a", "c", "b", "a")

	var b1, b2 bytes.Buffer
	require.NoError(t, forward.Encode(&b1, FormatBinary))
	require.NoError(t, backward.Encode(&b2, FormatBinary))
	assert.Equal(t, b1.Bytes(), b2.Bytes())
	assert.True(t, bytes.HasPrefix(b1.Bytes(), []byte(binaryMagic)))
}

func TestDecode_BinaryRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	var good bytes.Buffer
	require.NoError(t, New("hello", "world", "hello").Encode(&good, FormatBinary))
	data := good.Bytes()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: nil},
		{name: "bad magic", input: append([]byte("XXXX"), data[4:]...)},
		{name: "bad version", input: append(append([]byte(binaryMagic), 9, 0), data[6:]...)},
		{name: "truncated", input: data[:len(data)-2]},
		{name: "trailing data", input: append(append([]byte{}, data...), 0x01)},
		{name: "text input", input: []byte("a\t1\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.input), FormatBinary)
			assert.True(t, types.IsErrorCode(err, types.ErrIO), "got %v", err)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "BINARY", expected: FormatBinary},
		{input: "binary_pickle", expected: FormatBinary},
		{input: "TSV_WITH_HEADERS", expected: FormatTSVWithHeaders},
		{input: " tsv_without_headers ", expected: FormatTSVWithoutHeaders},
		{input: "CSV", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, types.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}

	assert.True(t, FormatTSVWithHeaders.IsText())
	assert.False(t, FormatBinary.IsText())
}
