// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

/*
Package corpus reads text documents from disk for counting.

A Reader picks a Loader by file suffix (".txt" plain text, ".txt.gz" and
".gz" gzip), checks that the bytes are valid UTF-8, then applies the
configured Unicode normalization and optional lowercasing. ReadContent never
fails: unreadable or unsupported documents are logged and counted as empty.

Walk enumerates the regular files under a root in lexical order, so a run
over the same tree always sees documents in the same sequence.
*/
package corpus
