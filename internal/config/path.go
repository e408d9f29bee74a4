// Package config provides configuration utilities shared by the commands.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves ~ to the user's home directory and expands $VAR
// style environment variables. Paths that need neither pass through
// unchanged.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
