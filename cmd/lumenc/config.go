package main

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// ProjectConfig is the optional lumen.yaml project file: a thin layer of
// defaults over CLI flags. It never changes compiler semantics, only which
// flags a given invocation defaults to (SPEC_FULL.md §2.2).
type ProjectConfig struct {
	Output  string `yaml:"output"`
	Target  string `yaml:"target"`
	KeepAsm bool   `yaml:"keepAsm"`
}

// loadConfig reads path if non-empty and it exists; a missing default path
// ("lumen.yaml" in the working directory) is not an error.
func loadConfig(path string) (*ProjectConfig, error) {
	if path == "" {
		path = "lumen.yaml"
		if _, err := os.Stat(path); err != nil {
			return &ProjectConfig{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// cacheArtifactPath resolves where an intermediate build artifact (the
// generated .asm/.o before assembler/linker cleanup) is written when the user
// hasn't asked to keep it alongside the source.
func cacheArtifactPath(stem, ext string) (string, error) {
	return xdg.CacheFile(filepath.Join("lumenc", stem+ext))
}
