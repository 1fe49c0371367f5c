package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/featlex/compress"
	"github.com/arloliu/featlex/lexicon"
	"github.com/arloliu/featlex/section"
	"github.com/arloliu/featlex/vector"
)

// FileStats is the stats report for one file.
type FileStats struct {
	Path            string         `yaml:"path"`
	Type            string         `yaml:"type"`
	ByteOrder       string         `yaml:"byte_order"`
	Entries         uint32         `yaml:"entries"`
	Capacity        uint32         `yaml:"capacity"`
	Labels          uint32         `yaml:"labels"`
	Compression     string         `yaml:"compression"`
	PayloadBytes    int            `yaml:"payload_bytes"`
	CompressedBytes int            `yaml:"compressed_bytes"`
	Ratio           float64        `yaml:"ratio"`
	SpaceSavings    float64        `yaml:"space_savings_percent"`
	Kinds           map[string]int `yaml:"kinds,omitempty"`
	MaxDepth        int            `yaml:"max_depth,omitempty"`
}

func newStatsCmd(log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE",
		Short: "Print header and compression statistics of a lexicon or example file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := collectStats(args[0], log)
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), stats)
		},
	}
}

func collectStats(path string, log zerolog.Logger) (*FileStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fileType := "lexicon"
	header, err := lexicon.Inspect(data)
	if err != nil {
		var verr error
		if header, verr = vector.Inspect(data); verr != nil {
			return nil, fmt.Errorf("%s is neither a lexicon nor an example file: %w", path, err)
		}
		fileType = "examples"
	}

	stats := headerStats(path, fileType, header, len(data)-section.HeaderSize)
	if fileType == "lexicon" {
		lex, err := lexicon.Decode(data, lexicon.WithLogger(log))
		if err != nil {
			return nil, err
		}
		stats.Kinds = make(map[string]int)
		for _, f := range lex.All() {
			stats.Kinds[f.Kind().String()]++
			stats.MaxDepth = max(stats.MaxDepth, f.Depth())
		}
	}

	return stats, nil
}

func headerStats(path, fileType string, h *section.Header, compressed int) *FileStats {
	cs := compress.Stats{
		Algorithm:      h.Flag.GetPayloadCompression(),
		OriginalSize:   int(h.PayloadSize),
		CompressedSize: compressed,
	}
	order := "little-endian"
	if h.Flag.IsBigEndian() {
		order = "big-endian"
	}

	return &FileStats{
		Path:            path,
		Type:            fileType,
		ByteOrder:       order,
		Entries:         h.EntryCount,
		Capacity:        h.Capacity,
		Labels:          h.LabelCount,
		Compression:     cs.Algorithm.String(),
		PayloadBytes:    cs.OriginalSize,
		CompressedBytes: cs.CompressedSize,
		Ratio:           cs.Ratio(),
		SpaceSavings:    cs.SpaceSavings(),
	}
}
