// Package validation checks LoRaWAN credentials before they are handed to
// the firmware build.
package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/defines"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/envfile"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/environ"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a validation issue.
type Issue struct {
	File     string   `json:"file"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation results.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// ambientLabel is used as Issue.File for values taken from the environment.
const ambientLabel = "environment"

// byteLengths is the expected number of bytes for each credential.
var byteLengths = map[string]int{
	defines.AppEUI: 8,
	defines.DevEUI: 8,
	defines.AppKey: 16,
}

// Validator validates the env file merged with an ambient environment.
type Validator struct {
	EnvFile string
}

// NewValidator creates a new Validator.
func NewValidator(envFile string) *Validator {
	return &Validator{EnvFile: envFile}
}

// ValidateAll validates the env file and every allow-listed credential.
func (v *Validator) ValidateAll(ambient *environ.Env) *Result {
	result := &Result{Issues: []Issue{}}

	entries, err := envfile.ParseFile(v.EnvFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// optional
	case err != nil:
		result.Issues = append(result.Issues, Issue{
			File:     v.EnvFile,
			Message:  fmt.Sprintf("failed to parse file: %v", err),
			Severity: SeverityError,
		})
		return result
	}

	for _, e := range entries {
		if e.Key == "" {
			result.Issues = append(result.Issues, Issue{
				File:     v.EnvFile,
				Message:  fmt.Sprintf("line %d has an empty key", e.Line),
				Severity: SeverityWarning,
			})
		}
	}

	env, err := envfile.Load(v.EnvFile, ambient)
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			File:     v.EnvFile,
			Message:  err.Error(),
			Severity: SeverityError,
		})
		return result
	}

	for _, name := range defines.AllowList {
		result.Issues = append(result.Issues, v.validateCredential(env, name)...)
	}

	return result
}

func (v *Validator) validateCredential(env *environ.Env, name string) []Issue {
	value, ok := env.Lookup(name)
	if !ok {
		return []Issue{{
			File:     v.EnvFile,
			Field:    name,
			Message:  fmt.Sprintf("%s is not set, the firmware default will be used", name),
			Severity: SeverityWarning,
		}}
	}

	file := v.EnvFile
	if src, _ := env.SourceOf(name); src == environ.SourceAmbient {
		file = ambientLabel
	}

	bytes, err := ParseByteList(value)
	if err != nil {
		return []Issue{{
			File:     file,
			Field:    name,
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}

	if want := byteLengths[name]; len(bytes) != want {
		return []Issue{{
			File:     file,
			Field:    name,
			Message:  fmt.Sprintf("%s must contain %d bytes, got %d", name, want, len(bytes)),
			Severity: SeverityError,
		}}
	}

	// An all-zero APP_EUI is legal (JoinEUI is often unused by the network).
	if name != defines.AppEUI && allZero(bytes) {
		return []Issue{{
			File:     file,
			Field:    name,
			Message:  fmt.Sprintf("%s is all zeros, looks like a placeholder", name),
			Severity: SeverityWarning,
		}}
	}

	return nil
}

// ParseByteList parses a C array initialiser such as "{ 0x00, 0x1A, 255 }".
// Each element must be an integer literal in the range 0-255; a trailing
// comma is allowed.
func ParseByteList(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("invalid format: expected a C initialiser like { 0x00, 0x01, ... }")
	}

	body := strings.TrimSpace(s[1 : len(s)-1])
	body = strings.TrimSuffix(body, ",")
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("invalid format: initialiser is empty")
	}

	parts := strings.Split(body, ",")
	out := make([]byte, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.ParseUint(p, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q at position %d", p, i)
		}
		out = append(out, byte(n))
	}
	return out, nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
