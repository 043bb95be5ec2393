// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

/*
Package main is the nlpvocab command line tool.

# Commands

  - words|chars|bpe <src_path> <vocab_file>: count tokens under src_path and
    save the vocabulary of frequent tokens to vocab_file.
  - convert <in> <out>: re-encode a vocabulary file in another format.
  - inspect <file>: print the most frequent tokens of a vocabulary file.
  - migrate <command>: manage the schema of the SQL export tables.
  - version, help.

Settings come from defaults, an optional YAML or TOML file (-config),
NLPVOCAB_* environment variables and finally command line flags. When
enabled in the configuration, the counted vocabulary is also exported to
Redis and/or a SQL database, and Prometheus metrics are written to a
textfile. Version, BuildTime and GitCommit are set with -ldflags.
*/
package main
