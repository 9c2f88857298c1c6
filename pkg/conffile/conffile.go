// Package conffile reads and updates firmware-style config files made of
// "key = value" lines.
//
// It is the line-supply layer around [confline]: it walks an io.Reader
// line by line, enforces size and count limits, and hands each line to
// the scanner. Lines longer than MaxLineSize are skipped whole, never
// split; scanning stops after MaxLineCount lines.
package conffile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"

	"github.com/spark-gap/confkit/pkg/confline"
)

// Limits from the original firmware config reader.
const (
	DefaultMaxLineSize  = 128
	DefaultMaxLineCount = 128
)

// ErrNotFound means no line in the file defines the requested key.
var ErrNotFound = errors.New("key not found")

// Options configures Lookup and Set.
type Options struct {
	// MaxLineSize is the longest line (in bytes, excluding the newline)
	// that will be scanned. Longer lines are skipped. Default: 128.
	MaxLineSize int

	// MaxLineCount is the number of lines examined before giving up.
	// Default: 128.
	MaxLineCount int

	// Log receives per-line trace output. Default: a no-op logger.
	Log zerolog.Logger
}

// Option mutates Options.
type Option func(*Options)

// MaxLineSize sets the longest scannable line in bytes.
func MaxLineSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxLineSize = n
		}
	}
}

// MaxLineCount sets how many lines are examined before giving up.
func MaxLineCount(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxLineCount = n
		}
	}
}

// WithLogger routes per-line trace output to log.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Options) {
		o.Log = log
	}
}

func applyOptions(opts []Option) Options {
	o := Options{
		MaxLineSize:  DefaultMaxLineSize,
		MaxLineCount: DefaultMaxLineCount,
		Log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Lookup scans r for the first line defining key and returns its value.
// Returns ErrNotFound if no line within the limits defines it.
func Lookup(r io.Reader, key string, opts ...Option) (string, error) {
	o := applyOptions(opts)
	br := bufio.NewReader(r)

	for lines := 0; lines < o.MaxLineCount; lines++ {
		line, tooLong, err := readLine(br, o.MaxLineSize)
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read config line: %w", err)
		}

		atEOF := errors.Is(err, io.EOF)
		if atEOF && len(line) == 0 {
			break
		}

		if tooLong {
			o.Log.Debug().Int("line", lines).Msg("skipping overlong line")
		} else if kv, ok := confline.Scan(string(line)); ok {
			o.Log.Debug().Int("line", lines).Str("key", kv.Key).Msg("scanned definition")

			if kv.Key == key {
				return kv.Value, nil
			}
		}

		if atEOF {
			break
		}
	}

	return "", ErrNotFound
}

// LookupFile is Lookup over the file at path.
func LookupFile(path, key string, opts ...Option) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Lookup(f, key, opts...)
}

// readLine collects one line (without its newline) from br, reading at
// most max bytes into the result. If the line is longer than max, the
// rest of it is consumed and discarded and tooLong is true, so the next
// call starts on a fresh line.
func readLine(br *bufio.Reader, max int) (line []byte, tooLong bool, err error) {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return line, tooLong, err
		}

		if c == '\n' {
			return line, tooLong, nil
		}

		if c == '\r' {
			continue
		}

		if tooLong {
			continue
		}

		if len(line) >= max {
			tooLong = true
			line = nil

			continue
		}

		line = append(line, c)
	}
}

// Set rewrites the first line of the file at path that defines key so it
// reads "key = value", or appends such a line if no definition exists.
// The file is replaced atomically.
//
// A rewritten line keeps its trailing comment, if it had one.
func Set(path, key, value string, opts ...Option) error {
	o := applyOptions(opts)

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read config file: %w", err)
	}

	lines := splitLines(data)

	replaced := false
	for i, line := range lines {
		kv, ok := confline.Scan(line)
		if !ok || kv.Key != key {
			continue
		}

		lines[i] = key + " = " + value + trailingComment(line)
		replaced = true

		o.Log.Debug().Int("line", i).Str("key", key).Msg("rewriting definition")

		break
	}

	if !replaced {
		lines = append(lines, key+" = "+value)
	}

	out := strings.Join(lines, "\n") + "\n"

	err = atomic.WriteFile(path, strings.NewReader(out))
	if err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// splitLines splits file contents into lines without terminators. A
// trailing newline does not produce a final empty line.
func splitLines(data []byte) []string {
	data = bytes.TrimSuffix(data, []byte("\n"))
	if len(data) == 0 {
		return nil
	}

	raw := strings.Split(string(data), "\n")
	for i, line := range raw {
		raw[i] = strings.TrimSuffix(line, "\r")
	}

	return raw
}

// trailingComment returns the
// " // ..." tail of line, or "" if the line has no comment.
func trailingComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return " " + line[i:]
	}

	return ""
}
