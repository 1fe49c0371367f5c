package main

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/featlex/format"
	"github.com/arloliu/featlex/lexicon"
)

func newPruneCmd(cfg Config, log zerolog.Logger) *cobra.Command {
	var (
		threshold   int64
		perLabel    bool
		output      string
		compression string
	)

	cmd := &cobra.Command{
		Use:   "prune FILE",
		Short: "Remove rare lexicon entries and write the result",
		Long: "Remove every entry without live parents whose count is below the threshold, " +
			"cascading into the children of removed conjunctions. Indices of the surviving " +
			"entries do not change.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := cfg.compression()
			if err != nil {
				return err
			}
			if compression != "" {
				var ok bool
				if comp, ok = format.ParseCompression(compression); !ok {
					return errors.New("unknown --compression, want None, Zstd, S2 or LZ4")
				}
			}
			if output == "" {
				output = args[0]
			}

			return pruneFile(args[0], output, lexicon.Policy{Threshold: threshold, PerLabel: perLabel}, comp, log)
		},
	}
	cmd.Flags().Int64Var(&threshold, "threshold", 1, "minimum count an entry needs to survive")
	cmd.Flags().BoolVar(&perLabel, "per-label", false, "keep entries whose count for any single label reaches the threshold")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite the input)")
	cmd.Flags().StringVar(&compression, "compression", "", "output compression (default: $LEXINSPECT_COMPRESSION)")

	return cmd
}

func pruneFile(in, out string, policy lexicon.Policy, comp format.CompressionType, log zerolog.Logger) error {
	lex, err := lexicon.Load(in, lexicon.WithLogger(log), lexicon.WithCompression(comp))
	if err != nil {
		return err
	}

	before := lex.Len()
	removed, err := lex.Prune(policy)
	if err != nil {
		return err
	}
	if err := lex.Save(out); err != nil {
		return err
	}

	log.Info().
		Str("input", in).
		Str("output", out).
		Int("before", before).
		Int("removed", removed).
		Int("remaining", lex.Len()).
		Msg("lexicon pruned")

	return nil
}
