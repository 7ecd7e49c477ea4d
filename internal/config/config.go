// Package config resolves the module loader's base path (SPEC_FULL.md
// §4.11): explicit constructor argument, then ZELO_PATH (spec.md §6), then
// a zelo.yaml search-path file in the working directory, else the
// executable's own directory.
//
// Grounded on funvibe-funxy/internal/config/constants.go's role as the
// single place path/extension conventions live for the whole interpreter;
// generalized here from a package of bare constants into a small resolver
// function, since zelo's base path is configurable per spec.md §6/§4.7
// where funxy's extension list was fixed at compile time.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is the module extension appended to an extensionless
// import path (spec.md §4.7).
const SourceFileExt = ".z"

// EnvVar is the environment variable that overrides the loader base path
// (spec.md §6).
const EnvVar = "ZELO_PATH"

// FileName is the optional YAML config file consulted when ZELO_PATH is
// unset (SPEC_FULL.md §4.11).
const FileName = "zelo.yaml"

// File is the shape of zelo.yaml: a list of search roots, tried in order,
// the first of which becomes the resolved base path.
type File struct {
	SearchPaths []string `yaml:"search_paths"`
}

// BasePath resolves the loader's base path following SPEC_FULL.md §4.11's
// four tiers. explicit, if non-empty, always wins (the host embedder's own
// choice outranks environment and file configuration).
func BasePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if v := os.Getenv(EnvVar); v != "" {
		return v, nil
	}
	if f, err := loadFile(FileName); err == nil && len(f.SearchPaths) > 0 {
		return f.SearchPaths[0], nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func loadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
