package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/epigo/match"
)

// ErrNoRows is returned when a dataset contains no data rows.
var ErrNoRows = errors.New("dataset contains no data rows")

// Load reads a correspondence set from path, decompressing by extension:
// .zst and .zstd select zstd, .lz4 selects lz4, anything else is read as
// plain text.
func Load(path string) (*match.Set, error) {
	file, err := os.Open(path) //nolint:gosec // G304: Path is configurable
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	var r io.Reader = file

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create decompressor: %w", err)
		}
		defer dec.Close()

		r = dec
	case ".lz4":
		r = lz4.NewReader(file)
	}

	return Read(r)
}

// Save writes a correspondence set to path, compressing by extension with
// the same rules as Load. An existing file is truncated.
func Save(path string, set *match.Set) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600) //nolint:gosec // G304: Path is configurable
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	w, closeCompressor, err := compressor(file, path)
	if err != nil {
		_ = file.Close()
		return err
	}

	if err := Write(w, set); err != nil {
		_ = closeCompressor()
		_ = file.Close()

		return err
	}

	// The compressed stream carries a trailer, so the compressor must be
	// closed before the file.
	if err := closeCompressor(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush compressor: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close dataset: %w", err)
	}

	return nil
}

func compressor(w io.Writer, path string) (io.Writer, func() error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create compressor: %w", err)
		}

		return enc, enc.Close, nil
	case ".lz4":
		enc := lz4.NewWriter(w)

		return enc, enc.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}

// Read parses whitespace-separated correspondence rows from r, one row per
// line. Everything from '#' to the end of a line is a comment and blank
// lines are skipped. The first data row fixes the column count.
func Read(r io.Reader) (*match.Set, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		set  *match.Set
		row  []float64
		line int
	)

	for sc.Scan() {
		line++

		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if set == nil {
			s, err := match.NewSet(len(fields))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}

			set = s
			row = make([]float64, len(fields))
		}

		if len(fields) != set.Cols() {
			return nil, fmt.Errorf("line %d: got %d values, want %d", line, len(fields), set.Cols())
		}

		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid value %q: %w", line, f, err)
			}

			row[i] = v
		}

		if err := set.AppendRow(row...); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if set == nil {
		return nil, ErrNoRows
	}

	return set, nil
}

// Write renders set as one space-separated text row per line. Values use
// the shortest representation that round-trips a float64.
func Write(w io.Writer, set *match.Set) error {
	bw := bufio.NewWriter(w)

	for i := 0; i < set.Len(); i++ {
		for j, v := range set.Row(i) {
			if j > 0 {
				_ = bw.WriteByte(' ')
			}

			_, _ = bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}

		_ = bw.WriteByte('\n')
	}

	// bufio errors are sticky; Flush reports the first one.
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	return nil
}
