package lexicon

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// WriteTo writes the encoded lexicon to w.
func (l *Lexicon) WriteTo(w io.Writer) (int64, error) {
	data, err := l.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)

	return int64(n), err
}

// Read decodes a lexicon from everything r yields.
func Read(r io.Reader, opts ...Option) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	return Decode(data, opts...)
}

// Save writes the lexicon to path, replacing any existing file.
func (l *Lexicon) Save(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create lexicon file: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	if _, err = l.WriteTo(file); err != nil {
		return fmt.Errorf("write lexicon file %s: %w", path, err)
	}

	l.cfg.logger.Info().Str("path", path).Int("entries", l.live).Msg("lexicon saved")

	return nil
}

// Load reads the lexicon file at path.
func Load(path string, opts ...Option) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}

	l, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("decode lexicon file %s: %w", path, err)
	}

	return l, nil
}
