package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/featlex/lexicon"
)

// DumpEntry is one lexicon entry in the dump output.
type DumpEntry struct {
	Index   int     `yaml:"index"`
	Feature string  `yaml:"feature"`
	Kind    string  `yaml:"kind"`
	Count   int64   `yaml:"count"`
	Labels  []int64 `yaml:"labels,flow,omitempty"`
	Parents int     `yaml:"parents,omitempty"`
	Left    *int    `yaml:"left,omitempty"`
	Right   *int    `yaml:"right,omitempty"`
}

func newDumpCmd(log zerolog.Logger) *cobra.Command {
	var (
		limit  int
		sorted bool
	)

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print lexicon entries as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := lexicon.Load(args[0], lexicon.WithLogger(log))
			if err != nil {
				return err
			}

			entries, err := dumpEntries(lex, limit, sorted)
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many entries (0 for all)")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "print in file order (children first) instead of index order")

	return cmd
}

func dumpEntries(lex *lexicon.Lexicon, limit int, sorted bool) ([]DumpEntry, error) {
	seq := lex.All()
	if sorted {
		seq = lex.Sorted()
	}

	entries := make([]DumpEntry, 0, lex.Len())
	for i, f := range seq {
		if limit > 0 && len(entries) == limit {
			break
		}

		e := DumpEntry{Index: i, Feature: f.String(), Kind: f.Kind().String()}
		var err error
		if e.Count, err = lex.Count(i, -1); err != nil {
			return nil, err
		}
		for label := range lex.LabelCount() {
			c, err := lex.Count(i, label)
			if err != nil {
				return nil, err
			}
			e.Labels = append(e.Labels, c)
		}
		if e.Parents, err = lex.Parents(i); err != nil {
			return nil, err
		}
		if f.IsConjunctive() {
			left, right, err := lex.Children(i)
			if err != nil {
				return nil, err
			}
			e.Left, e.Right = &left, &right
		}
		entries = append(entries, e)
	}

	return entries, nil
}
