// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/review-fetch/pkg/types"
)

// DefaultDir is where output files land when no directory is configured.
const DefaultDir = "reviews"

// Paths holds the locations of one run's output files.
type Paths struct {
	Markdown string
	Text     string
}

// Write creates the output directory if needed and writes both
// renderings, named after the forum id. Callers render the full
// collection first and write second, so a failed fetch never leaves
// partial files behind.
func Write(cfg types.OutputConfig, forumID, markdown, text string) (Paths, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	p := Paths{
		Markdown: filepath.Join(dir, fmt.Sprintf("reviews_%s.md", forumID)),
		Text:     filepath.Join(dir, fmt.Sprintf("reviews_%s.txt", forumID)),
	}
	if err := os.WriteFile(p.Markdown, []byte(markdown), 0o644); err != nil {
		return Paths{}, fmt.Errorf("writing %s: %w", p.Markdown, err)
	}
	if err := os.WriteFile(p.Text, []byte(text), 0o644); err != nil {
		return Paths{}, fmt.Errorf("writing %s: %w", p.Text, err)
	}
	return p, nil
}
