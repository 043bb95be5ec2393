// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

/*
Package counter builds a vocabulary from a corpus on disk.

# Overview

A Driver walks a file or directory tree in lexical order and groups
documents into batches. Each batch is read, tokenized and counted into its
own Vocabulary on a worker goroutine; a single goroutine folds the batch
results into the running total. Because vocabulary addition is commutative
and associative, the final counts do not depend on how batches interleave.

After counting, tokens below the minimum frequency are split off, then the
result is optionally capped to the most frequent tokens. The kept half is
what Persist saves.

# Failure policy

Options are validated and the source path is checked before any document is
read. Unreadable documents are skipped with a warning. A tokenizer error, or
cancellation of the context, aborts the run.
*/
package counter
