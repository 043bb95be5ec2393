// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

/*
Package types provides the shared error types of nlpvocab.

# Overview

types is the lowest package of the module and depends on no other internal
package. Every package returns failures as *Error so callers can branch on
the error code without string matching.

# Error codes

  - VALIDATION: bad arguments, rejected before any I/O
  - UNSUPPORTED_OPERATION: operations a Vocabulary refuses
  - IO: file access, malformed persisted data
  - TOKENIZER_ERROR: tokenizer initialization or encoding failure
  - STORE_ERROR: export sink failures

# Helpers

AsError / GetErrorCode / IsErrorCode walk the wrap chain with errors.As, so
codes survive fmt.Errorf("...: %w", err) wrapping.
*/
package types
