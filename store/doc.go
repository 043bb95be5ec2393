// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

/*
Package store exports vocabularies to shared backends.

A Sink publishes a named vocabulary together with the run that produced it
and can read it back. Two sinks are provided:

  - RedisSink stores each vocabulary as a hash of token to count, plus a
    metadata hash. An export replaces both in one MULTI/EXEC transaction.
  - SQLSink stores one row per token through gorm, on PostgreSQL, MySQL or
    SQLite. An export replaces the rows of that vocabulary in one
    transaction.

Readers of either backend never observe a half-written vocabulary.
*/
package store
