package defines

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how definitions are rendered.
type Format string

const (
	FormatFlags  Format = "flags"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatHeader Format = "header"
)

// Formats lists every supported format.
var Formats = []Format{FormatFlags, FormatJSON, FormatYAML, FormatHeader}

// ParseFormat converts a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected one of %s)", s, formatNames())
}

func formatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Render writes defs to w in the given format.
func Render(w io.Writer, format Format, defs []Define) error {
	switch format {
	case FormatFlags:
		return renderFlags(w, defs)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(defs); err != nil {
			return err
		}
		return enc.Close()
	case FormatHeader:
		return renderHeader(w, defs)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Flag returns the compiler flag for d, quoted for a POSIX shell when needed.
func (d Define) Flag() string {
	return shellQuote("-D" + d.Name + "=" + d.Value)
}

func renderFlags(w io.Writer, defs []Define) error {
	if len(defs) == 0 {
		return nil
	}
	flags := make([]string, len(defs))
	for i, d := range defs {
		flags[i] = d.Flag()
	}
	_, err := fmt.Fprintln(w, strings.Join(flags, " "))
	return err
}

const headerPreamble = `// Code generated by secretdefs. DO NOT EDIT.
// Definitions here take precedence over the defaults in secrets.h.
#pragma once
`

func renderHeader(w io.Writer, defs []Define) error {
	var b strings.Builder
	b.WriteString(headerPreamble)
	if len(defs) > 0 {
		b.WriteString("\n")
	}
	for _, d := range defs {
		fmt.Fprintf(&b, "#define %s %s\n", d.Name, d.Value)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// shellQuote single-quotes s unless it consists only of characters that
// need no quoting.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("_-+=/.,:@%", r)
}
