// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/review-fetch/pkg/types"
)

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()

	col := sampleCollection()
	col.Fetched = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	path, err := WriteManifest(types.OutputConfig{Dir: dir}, col)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reviews_fID.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, "fID", m.Forum)
	assert.Equal(t, "V.org/2026/Conf", m.Venue)
	assert.Equal(t, "V.org/2026/Conf/-/Official_Review", m.Invitation)
	assert.Equal(t, 2, m.Count)
	require.Len(t, m.Reviews, 2)
	assert.Equal(t, "Reviewer_x7Kq", m.Reviews[0].Reviewer)
	assert.Equal(t, "summary", m.Reviews[0].Fields[0].Name)

	// Spot-check the key names the file exposes to other tooling.
	text := string(data)
	assert.Contains(t, text, "forum: fID")
	assert.Contains(t, text, "count: 2")
}

func TestWriteManifestEmptyCollection(t *testing.T) {
	dir := t.TempDir()

	col := types.ReviewCollection{ForumID: "fID", VenueID: "V.org/2026/Conf"}
	path, err := WriteManifest(types.OutputConfig{Dir: dir}, col)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Zero(t, m.Count)
	assert.Empty(t, m.Reviews)
}
