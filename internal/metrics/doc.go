// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

/*
Package metrics collects Prometheus metrics for counting runs.

# Overview

Collector owns a private prometheus.Registry, so several collectors (one per
test, or one per run) never clash on registration. A short-lived CLI process
has no scrape endpoint; WriteTextfile dumps the registry in the text format
read by the node_exporter textfile collector.

# Metrics

  - documents_total: documents seen, labelled read or skipped.
  - tokens_total, batches_total, batch_duration_seconds: counting throughput.
  - vocabulary_size: kept and removed token counts after partitioning.
  - persist_duration_seconds, exports_total: saving and sink exports.

A nil *Collector is valid and records nothing.
*/
package metrics
