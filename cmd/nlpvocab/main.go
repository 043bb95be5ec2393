// =============================================================================
// nlpvocab command line entry point
// =============================================================================
// Usage:
//
//	nlpvocab words <src_path> <vocab_file> [flags]   # word vocabulary
//	nlpvocab chars <src_path> <vocab_file> [flags]   # character vocabulary
//	nlpvocab bpe <src_path> <vocab_file> [flags]     # BPE piece vocabulary
//	nlpvocab convert <in> <out> -from FMT -to FMT   # change file format
//	nlpvocab inspect <file> [-format FMT] [-top N]  # show top tokens
//	nlpvocab migrate up|down|status [-config path]  # SQL export schema
//	nlpvocab version
// =============================================================================

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BaSui01/nlpvocab/tokenizer"
)

// =============================================================================
// 📦 Build information (set via -ldflags)
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	switch args[0] {
	case tokenizer.WordsName, tokenizer.CharsName, tokenizer.BPEName:
		return runCount(args[0], args[1:], stdout, stderr)
	case "convert":
		return runConvert(args[1:], stdout, stderr)
	case "inspect":
		return runInspect(args[1:], stdout, stderr)
	case "migrate":
		return runMigrate(args[1:], stdout, stderr)
	case "version":
		printVersion(stdout)
		return exitOK
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return exitUsage
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "nlpvocab %s\n", Version)
	fmt.Fprintf(w, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `nlpvocab - build token frequency vocabularies

Usage:
  nlpvocab <command> [arguments] [flags]

Commands:
  words <src_path> <vocab_file>   Count whitespace-separated words
  chars <src_path> <vocab_file>   Count characters
  bpe <src_path> <vocab_file>     Count tiktoken BPE pieces
  convert <in> <out>              Convert a vocabulary file between formats
  inspect <file>                  Print the most frequent tokens of a file
  migrate <command>               Manage the SQL export schema
                                  (up, down, down-all, steps N, force N, version, status, info)
  version                         Show version information
  help                            Show this help message

Flags for words, chars and bpe:
  -config <path>         YAML or TOML configuration file
  -batch_size <n>        Documents per batch (default 100)
  -min_freq <n>          Drop tokens seen fewer times (default 1)
  -max_size <n>          Keep at most n tokens, 0 for all (default 0)
  -file_format <fmt>     BINARY, TSV_WITH_HEADERS, TSV_WITHOUT_HEADERS (default TSV_WITH_HEADERS)
  -unicode_norm <form>   NONE, NFC, NFKC, NFD, NFKD (default NONE)
  -lower_case            Lowercase documents before tokenizing
  -workers <n>           Batches counted in parallel (default: CPU count)
  -bpe_encoding <name>   tiktoken encoding for bpe (default cl100k_base)
  -name <name>           Name used for Redis/SQL export (default: vocab_file base name)

Flags for convert:
  -from <fmt>  -to <fmt>

Flags for inspect:
  -format <fmt>  -top <n> (default 20)

Examples:
  nlpvocab words ./corpus vocab.tsv -min_freq 5
  nlpvocab chars ./corpus chars.bin -file_format BINARY -unicode_norm NFKC
  nlpvocab convert vocab.tsv vocab.bin -from TSV_WITH_HEADERS -to BINARY
  nlpvocab inspect vocab.bin -format BINARY -top 50
  nlpvocab migrate up -config nlpvocab.yaml`)
}
