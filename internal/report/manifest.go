// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/review-fetch/pkg/types"
)

// Manifest is the machine-readable companion to the rendered outputs:
// the structured collection plus enough context to know where it came
// from and when.
type Manifest struct {
	Forum      string         `yaml:"forum"`
	Venue      string         `yaml:"venue"`
	Invitation string         `yaml:"invitation"`
	Fetched    time.Time      `yaml:"fetched"`
	Count      int            `yaml:"count"`
	Reviews    []types.Review `yaml:"reviews"`
}

// WriteManifest saves the collection as reviews_<forum>.yaml in the
// output directory and returns the path written.
func WriteManifest(cfg types.OutputConfig, col types.ReviewCollection) (string, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	m := Manifest{
		Forum:      col.ForumID,
		Venue:      col.VenueID,
		Invitation: col.InvitationID,
		Fetched:    col.Fetched,
		Count:      col.Count(),
		Reviews:    col.Reviews,
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("reviews_%s.yaml", col.ForumID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}
