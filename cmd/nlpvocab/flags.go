package main

import (
	"flag"
	"fmt"
)

// parseInterspersed parses fs over args, allowing flags before, between
// and after positional arguments. It returns the positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// Parse consumes a "--" terminator; everything after it is positional.
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// expectArgs checks the number of positional arguments.
func expectArgs(cmd string, got []string, names ...string) error {
	if len(got) != len(names) {
		return fmt.Errorf("%s: expected %d arguments %v, got %d", cmd, len(names), names, len(got))
	}
	return nil
}
