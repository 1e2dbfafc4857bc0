// Package defines collects allow-listed environment variables as
// preprocessor definitions and renders them for the build system.
package defines

import (
	"log/slog"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/environ"
)

// Allow-listed variable names.
const (
	AppEUI = "APP_EUI"
	DevEUI = "DEV_EUI"
	AppKey = "APP_KEY"
)

// AllowList is the ordered set of variables forwarded as definitions.
var AllowList = []string{AppEUI, DevEUI, AppKey}

// Define is a single NAME=VALUE preprocessor definition.
type Define struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Collect returns a Define for every allow-listed variable present in env,
// in allow-list order. Absent variables are skipped.
func Collect(env *environ.Env) []Define {
	defs := make([]Define, 0, len(AllowList))
	for _, name := range AllowList {
		value, ok := env.Lookup(name)
		if !ok {
			slog.Debug("variable not set, skipping", "name", name)
			continue
		}
		defs = append(defs, Define{Name: name, Value: value})
	}
	return defs
}
