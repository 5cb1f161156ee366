// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory is one secret: the filename is the key name
// and the file contents (trimmed) are the value.
//
// The downloader reads one secret: openreview-password.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PasswordFile is the filename holding the OpenReview account password.
const PasswordFile = "openreview-password"

// Read returns the named secret from dir with surrounding whitespace
// trimmed. A missing directory or file is not an error: Read returns ""
// so the caller can fall back to prompting interactively. Any other
// read failure is reported.
func Read(dir, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading secret %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}
