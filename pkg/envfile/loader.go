package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/environ"
)

// Load merges the env file at path into a copy of env and returns it.
//
// A missing file is not an error. Variables already present in env win over
// the file, and earlier file lines win over later ones. The file is parsed in
// full before merging, so a malformed line yields (nil, err).
func Load(path string, env *environ.Env) (*environ.Env, error) {
	entries, err := ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("env file not found, skipping", "path", path)
		return env.Clone(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	merged := env.Clone()
	applied := 0
	for _, e := range entries {
		if merged.SetDefault(e.Key, e.Value, environ.SourceFile) {
			applied++
			continue
		}
		slog.Debug("keeping existing value", "key", e.Key, "line", e.Line)
	}

	slog.Debug("env file loaded", "path", path, "entries", len(entries), "applied", applied, "total", merged.Len())
	return merged, nil
}
