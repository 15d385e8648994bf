package reveal

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

const sha256Prefix = "sha256:"

// Secret is the expected password for one exercise.
//
// Two forms are accepted:
//   - a plaintext literal, compared with exact, case-sensitive equality
//   - "sha256:<hex>", where the candidate is hashed and the hex digests are
//     compared case-insensitively
//
// Plaintext secrets embedded in a distributed registry are readable by
// anyone holding the binary or the file; the gate is behavioral, not a
// confidentiality boundary.
type Secret string

// Matches reports whether candidate satisfies the secret.
func (s Secret) Matches(candidate string) bool {
	raw := string(s)
	if strings.HasPrefix(raw, sha256Prefix) {
		sum := sha256.Sum256([]byte(candidate))
		return strings.EqualFold(strings.TrimPrefix(raw, sha256Prefix), hex.EncodeToString(sum[:]))
	}
	return raw == candidate
}

// Registry maps exercise identifiers to their expected secrets.
//
// It is built once and never mutated afterwards; absence of an identifier is
// a valid, expected state.
type Registry struct {
	secrets map[string]Secret
}

// NewRegistry builds a registry from entries. The map is copied; later
// mutation of entries does not affect the registry.
func NewRegistry(entries map[string]Secret) *Registry {
	secrets := make(map[string]Secret, len(entries))
	for id, s := range entries {
		secrets[id] = s
	}
	return &Registry{secrets: secrets}
}

// Lookup returns the secret registered for exerciseID.
func (r *Registry) Lookup(exerciseID string) (Secret, bool) {
	s, ok := r.secrets[exerciseID]
	return s, ok
}

// IDs returns the registered exercise identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.secrets))
	for id := range r.secrets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultEntries returns a fresh copy of the registry embedded in the
// binary. Callers may overlay entries from a registry file before building
// the Registry.
func DefaultEntries() map[string]Secret {
	return map[string]Secret{
		"UD1-1": "cliente-servidor",
		"UD1-2": "conmutacion-de-paquetes",
		"UD2-1": "modelo-osi",
	}
}

// DefaultRegistry returns the registry embedded in the binary.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultEntries())
}
