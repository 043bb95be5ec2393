// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

// Package config loads nlpvocab configuration from defaults, a YAML or TOML
// file and NLPVOCAB_* environment variables, in that order of priority.
package config
