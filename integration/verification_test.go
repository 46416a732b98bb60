//go:build basic

// Package integration contains integration tests for shiftgrid.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetPath = "testdata/roster.json"

// TestStreaksVerification checks the streaks command against counts read off the dataset.
func TestStreaksVerification(t *testing.T) {
	report := readStreaks(t, "--dataset", datasetPath, "--cache-backend", "none")

	require.Len(t, report.Summaries, 3)
	assert.Equal(t, "n-001", report.Summaries[0].PersonID)
	assert.Equal(t, 10, report.Summaries[0].MaxStreak)

	// Four days before the range carry into its first day
	assert.Equal(t, 4, report.Streaks["n-001"]["02/02/2025"])
	assert.Equal(t, 10, report.Streaks["n-001"]["08/02/2025"])

	// The day off breaks the run
	assert.Equal(t, 2, report.Streaks["n-002"]["04/02/2025"])
	assert.Equal(t, 1, report.Streaks["n-002"]["06/02/2025"])
	assert.Equal(t, 1, report.Streaks["n-003"]["04/02/2025"])
}

// TestSiteFilterVerification checks that a site filter keeps only people of that site.
func TestSiteFilterVerification(t *testing.T) {
	report := readStreaks(t, "--dataset", datasetPath, "--cache-backend", "none", "--site", "east")
	require.Len(t, report.Summaries, 1)
	assert.Equal(t, "n-003", report.Summaries[0].PersonID)
}

// TestCheckExitCode checks that violations fail the command and a looser limit passes.
func TestCheckExitCode(t *testing.T) {
	args := append([]string{"check"}, rangeArgs...)
	args = append(args, "--dataset", datasetPath, "--cache-backend", "none")

	output, err := runShiftgrid(t, append(args, "--max-streak", "7")...)
	require.Error(t, err)
	assert.Contains(t, string(output), "Avery Chen")

	_, err = runShiftgrid(t, append(args, "--max-streak", "11")...)
	require.NoError(t, err)
}

// TestRangesVerification checks the five options around the pivot.
func TestRangesVerification(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ranges.json")
	args := append([]string{"ranges"}, rangeArgs...)
	_, err := runShiftgrid(t, append(args, "--output", "json", "--output-file", out, "--cache-backend", "none")...)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got struct {
		Selected string `json:"selected"`
		Options  []struct {
			Label string `json:"label"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "2025-W06", got.Selected)
	require.Len(t, got.Options, 5)
	assert.Equal(t, "2025-W04", got.Options[0].Label)
	assert.Equal(t, "2025-W08", got.Options[4].Label)
}
