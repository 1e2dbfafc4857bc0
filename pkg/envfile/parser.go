// Package envfile provides utilities for parsing dotenv-style files and
// merging them into an environment.
package envfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// DefaultName is the env file looked up in the working directory.
const DefaultName = ".env"

// ErrMissingSeparator is matched by a ParseError for a line without '='.
var ErrMissingSeparator = errors.New("missing '=' separator")

// ParseError describes a malformed line.
type ParseError struct {
	Path string
	Line int
	Text string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v: %q", e.Line, ErrMissingSeparator, e.Text)
	}
	return fmt.Sprintf("%s:%d: %v: %q", e.Path, e.Line, ErrMissingSeparator, e.Text)
}

// Is reports whether target is ErrMissingSeparator.
func (e *ParseError) Is(target error) bool {
	return target == ErrMissingSeparator
}

// Entry is a single KEY=VALUE assignment.
type Entry struct {
	Key   string
	Value string
	Line  int
}

// Parse parses a dotenv-style stream and returns its assignments in order.
// It handles:
// - KEY=VALUE format (only the first = is used as delimiter)
// - KEY="VALUE" (one pair of surrounding double quotes is stripped)
// - Comments (lines starting with #)
// - Empty lines (skipped)
// - LF, CRLF and bare CR line endings, with no limit on line length
//
// Any other line is a *ParseError. Keys and values are not trimmed beyond the
// line itself and no escapes are interpreted.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	scanner.Split(scanLines)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &ParseError{Line: lineNo, Text: line}
		}

		entries = append(entries, Entry{Key: key, Value: unquote(value), Line: lineNo})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ParseFile parses the file at path.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	entries, err := Parse(file)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return entries, nil
}

func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// scanLines is bufio.ScanLines that also ends a line at a bare '\r'.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// A '\n' may follow in the next read.
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
