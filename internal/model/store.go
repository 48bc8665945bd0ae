package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a named model has no artifact on disk.
var ErrNotFound = errors.New("model artifact not found")

// artifact is the on-disk model document. The schema version is pinned
// at save time and rejected at load if the feature layout has moved on.
type artifact struct {
	SchemaVersion string `json:"schema_version"`
	Model         *GBT   `json:"model"`
}

// Store persists models as a pair of JSON files per name: the model
// document and the ordered feature-name list the model was fitted on.
type Store struct {
	dir           string
	schemaVersion string
}

// NewStore creates a store rooted at dir, tagging artifacts with the
// given feature schema version.
func NewStore(dir, schemaVersion string) *Store {
	return &Store{dir: dir, schemaVersion: schemaVersion}
}

func (s *Store) modelPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) featuresPath(name string) string {
	return filepath.Join(s.dir, name+"_feature_names.json")
}

// Save writes the model and its feature-name list atomically enough
// for single-writer use: the directory is created on demand and both
// files are fully rewritten.
func (s *Store) Save(name string, m *GBT, featureNames []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create artifacts dir: %w", err)
	}

	doc, err := json.Marshal(artifact{SchemaVersion: s.schemaVersion, Model: m})
	if err != nil {
		return fmt.Errorf("encode model %s: %w", name, err)
	}
	if err := os.WriteFile(s.modelPath(name), doc, 0o644); err != nil {
		return fmt.Errorf("write model %s: %w", name, err)
	}

	names, err := json.Marshal(featureNames)
	if err != nil {
		return fmt.Errorf("encode feature names for %s: %w", name, err)
	}
	if err := os.WriteFile(s.featuresPath(name), names, 0o644); err != nil {
		return fmt.Errorf("write feature names for %s: %w", name, err)
	}
	return nil
}

// Load reads a model and its feature-name list by name. A missing
// artifact yields ErrNotFound; a schema-version mismatch is an error
// because the persisted trees were fitted on a different feature
// layout.
func (s *Store) Load(name string) (*GBT, []string, error) {
	doc, err := os.ReadFile(s.modelPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("model %s: %w", name, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("read model %s: %w", name, err)
	}

	var a artifact
	if err := json.Unmarshal(doc, &a); err != nil {
		return nil, nil, fmt.Errorf("decode model %s: %w", name, err)
	}
	if a.SchemaVersion != s.schemaVersion {
		return nil, nil, fmt.Errorf("model %s: schema version %q does not match current %q",
			name, a.SchemaVersion, s.schemaVersion)
	}

	raw, err := os.ReadFile(s.featuresPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("feature names for %s: %w", name, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("read feature names for %s: %w", name, err)
	}
	var featureNames []string
	if err := json.Unmarshal(raw, &featureNames); err != nil {
		return nil, nil, fmt.Errorf("decode feature names for %s: %w", name, err)
	}

	return a.Model, featureNames, nil
}

// Exists reports whether a model artifact is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.modelPath(name))
	return err == nil
}
