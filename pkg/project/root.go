// Package project provides utilities for working with the firmware project layout.
package project

import (
	"os"
	"path/filepath"
)

// Markers identify a project root, checked in order.
var Markers = []string{"platformio.ini", "secretdefs.yaml"}

// FindRoot walks up from start looking for a directory that contains one of
// Markers. It returns start itself when no marker is found.
func FindRoot(start string) (string, error) {
	start, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, marker := range Markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return start, nil
		}
		dir = parent
	}
}
