package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"solgate/internal/reveal"
)

type registryFile struct {
	Exercises map[string]string `yaml:"exercises"`
}

// LoadRegistryFromFile reads and parses the registry definition at path.
//
// Format: YAML with a single `exercises` mapping of exercise id to secret
// (plaintext or "sha256:<hex>").
//
// The loader is deterministic:
//   - Rejects unknown keys (to avoid silent divergence).
//   - Does not consult environment variables.
func LoadRegistryFromFile(path string) (map[string]reveal.Secret, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var rf registryFile
	if err := yaml.UnmarshalStrict(b, &rf); err != nil {
		return nil, fmt.Errorf("parse registry yaml: %w", err)
	}
	if len(rf.Exercises) == 0 {
		return nil, fmt.Errorf("parse registry yaml: no exercises")
	}
	out := make(map[string]reveal.Secret, len(rf.Exercises))
	for id, secret := range rf.Exercises {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("parse registry yaml: empty exercise id")
		}
		out[id] = reveal.Secret(secret)
	}
	return out, nil
}

// buildRegistry overlays the entries of an optional registry file on the
// embedded defaults. File entries win per key.
func buildRegistry(path string) (*reveal.Registry, error) {
	entries := reveal.DefaultEntries()
	if path != "" {
		fileEntries, err := LoadRegistryFromFile(path)
		if err != nil {
			return nil, err
		}
		for id, s := range fileEntries {
			entries[id] = s
		}
	}
	return reveal.NewRegistry(entries), nil
}
