package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest name looked up when a directory is given.
const ManifestFile = "requirements.yaml"

// ErrManifestNotFound is returned when the manifest path does not exist.
var ErrManifestNotFound = errors.New("requirements manifest not found")

// Manifest is the on-disk description of a project's requirements.
type Manifest struct {
	Project      string          `json:"project" yaml:"project"`
	Requirements []ManifestEntry `json:"requirements" yaml:"requirements"`
}

// ManifestEntry describes one requirement. Type is kept as written; it is
// parsed when the entry becomes a domain requirement.
type ManifestEntry struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Type        string     `json:"type" yaml:"type"`
	Priority    int        `json:"priority" yaml:"priority"`
	SMART       SMARTFlags `json:"smart" yaml:"smart"`
	Verify      bool       `json:"verify,omitempty" yaml:"verify,omitempty"`
	Notes       string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// SMARTFlags mirrors the five SMART criteria of a requirement.
type SMARTFlags struct {
	Specific   bool `json:"specific" yaml:"specific"`
	Measurable bool `json:"measurable" yaml:"measurable"`
	Achievable bool `json:"achievable" yaml:"achievable"`
	Relevant   bool `json:"relevant" yaml:"relevant"`
	TimeBound  bool `json:"time_bound" yaml:"time_bound"`
}

// ManifestLoader reads requirement manifests from the filesystem.
// It never writes.
type ManifestLoader struct {
	retryConfig retry.Config
	logger      *slog.Logger
}

func NewManifestLoader(logger *slog.Logger) *ManifestLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManifestLoader{
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
		logger: logger,
	}
}

// ResolvePath cleans path and, when it names a directory, points it at the
// ManifestFile inside.
func (l *ManifestLoader) ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("manifest path cannot be empty")
	}

	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrManifestNotFound, cleanPath)
		}
		return "", fmt.Errorf("failed to stat manifest: %w", err)
	}
	if info.IsDir() {
		return l.ResolvePath(filepath.Join(cleanPath, ManifestFile))
	}
	return cleanPath, nil
}

// Load reads, schema-checks and decodes the manifest at path.
func (l *ManifestLoader) Load(ctx context.Context, path string) (*Manifest, error) {
	resolved, err := l.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	retryer := retry.New[[]byte](l.retryConfig)
	data, err := retryer.Do(ctx, func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- Path is resolved via ResolvePath
		return os.ReadFile(resolved)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := DecodeManifest(resolved, data)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("manifest loaded",
		"path", resolved,
		"project", m.Project,
		"requirements", len(m.Requirements))
	return m, nil
}

// DecodeManifest decodes data as JSON when name ends in .json and as YAML
// otherwise, after checking it against the manifest schema.
func DecodeManifest(name string, data []byte) (*Manifest, error) {
	isJSON := strings.EqualFold(filepath.Ext(name), ".json")

	var raw interface{}
	if isJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
		}
	}

	if err := validateManifestSchema(name, raw); err != nil {
		return nil, err
	}

	var m Manifest
	if isJSON {
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	}
	return &m, nil
}
