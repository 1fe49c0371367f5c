// Command lexinspect inspects and maintains persisted featlex lexicons and
// example files.
//
// Usage:
//
//	lexinspect stats pos.lex
//	lexinspect dump pos.lex --limit 20
//	lexinspect prune pos.lex --threshold 3 -o pos.pruned.lex
//
// Environment:
//
//	LEXINSPECT_LOG_LEVEL    DEBUG, INFO, WARN or ERROR (default INFO)
//	LEXINSPECT_COMPRESSION  None, Zstd, S2 or LZ4 for rewritten files (default Zstd)
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/featlex/format"
	"github.com/arloliu/featlex/internal/logger"
)

const (
	exitSuccess = 0
	exitError   = 1
)

// Config is read from LEXINSPECT_* environment variables.
type Config struct {
	LogLevel    string `envconfig:"LEXINSPECT_LOG_LEVEL" default:"INFO"`
	Compression string `envconfig:"LEXINSPECT_COMPRESSION" default:"Zstd"`
}

func (c Config) compression() (format.CompressionType, error) {
	comp, ok := format.ParseCompression(c.Compression)
	if !ok {
		return 0, fmt.Errorf("unknown compression %q, want None, Zstd, S2 or LZ4", c.Compression)
	}

	return comp, nil
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read environment: %v\n", err)
		os.Exit(exitError)
	}

	log := logger.New("lexinspect", cfg.LogLevel)
	if err := newRootCmd(cfg, log).Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}

func newRootCmd(cfg Config, log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "lexinspect",
		Short:         "Inspect and maintain featlex lexicon and example files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newStatsCmd(log),
		newDumpCmd(log),
		newPruneCmd(cfg, log),
	)

	return root
}

// writeYAML encodes v to w. Close flushes the final document, so its error
// is reported too.
func writeYAML(w io.Writer, v any) (err error) {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() {
		err = errors.Join(err, enc.Close())
	}()

	return enc.Encode(v)
}
