package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/BaSui01/nlpvocab/vocab"
)

// =============================================================================
// 📦 Convert and inspect commands
// =============================================================================

func runConvert(args []string, stdout, stderr io.Writer) int {
	var from, to string
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&from, "from", string(vocab.FormatTSVWithHeaders), "Input file format")
	fs.StringVar(&to, "to", string(vocab.FormatBinary), "Output file format")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if err := expectArgs("convert", positional, "in", "out"); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	fromFormat, err := vocab.ParseFormat(from)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	toFormat, err := vocab.ParseFormat(to)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	v, err := vocab.Load(positional[0], fromFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if err := v.Save(positional[1], toFormat); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	fmt.Fprintf(stdout, "%s -> %s: %d tokens\n", positional[0], positional[1], v.Len())
	return exitOK
}

func runInspect(args []string, stdout, stderr io.Writer) int {
	var format string
	var top int
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&format, "format", string(vocab.FormatTSVWithHeaders), "Vocabulary file format")
	fs.IntVar(&top, "top", 20, "Number of tokens to print, 0 for all")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if err := expectArgs("inspect", positional, "file"); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if top < 0 {
		fmt.Fprintln(stderr, "inspect: -top must not be negative")
		return exitUsage
	}

	f, err := vocab.ParseFormat(format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	v, err := vocab.Load(positional[0], f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	fmt.Fprintf(stdout, "size: %d\ntotal: %d\n", v.Len(), v.Total())
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTOKEN\tCOUNT")
	for i, e := range v.MostCommon(top) {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, vocab.Escape(e.Token), e.Count)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}
