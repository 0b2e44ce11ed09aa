package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/auditdeck/internal/domain"
)

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	all := append([]string{"auditdeck", "--no-color", "--config", configPath}, args...)
	err := Run(context.Background(), all, strings.NewReader(""), &stdout, &stderr)
	return stdout.String(), err
}

func TestRunList(t *testing.T) {
	tests := map[string]struct {
		args   []string
		expIDs []string
		expErr bool
	}{
		"Listing without filters should return every audit, newest first.": {
			args:   []string{"list", "--format", "json"},
			expIDs: []string{"audit-001", "audit-002", "audit-003"},
		},

		"Filtering by status should drop the rest.": {
			args:   []string{"list", "--format", "json", "--status", "completed"},
			expIDs: []string{"audit-001", "audit-003"},
		},

		"Sorting by score ascending should put unscored audits first.": {
			args:   []string{"list", "--format", "json", "--sort", "score", "--order", "asc"},
			expIDs: []string{"audit-002", "audit-003", "audit-001"},
		},

		"Searching should match the project name.": {
			args:   []string{"list", "--format", "json", "--search", "staking"},
			expIDs: []string{"audit-003"},
		},

		"An unknown status should fail.": {
			args:   []string{"list", "--status", "pending"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := runCLI(t, filepath.Join(t.TempDir(), "config.toml"), test.args...)
			if test.expErr {
				assert.True(t, errors.Is(err, domain.ErrNotValid))
				return
			}
			require.NoError(t, err)

			var got struct {
				Audits []struct {
					ID string `json:"id"`
				} `json:"audits"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			ids := make([]string, 0, len(got.Audits))
			for _, a := range got.Audits {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, test.expIDs, ids)
		})
	}
}

func TestRunReport(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, cfgPath, "report", "audit-001", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# DeFi Lending Protocol")

	_, err = runCLI(t, cfgPath, "report", "audit-999")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRunSimulate(t *testing.T) {
	out, err := runCLI(t, filepath.Join(t.TempDir(), "config.toml"),
		"simulate", "--format", "json", "--interval", "1ms", "--seed", "7")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	require.LessOrEqual(t, len(lines), 21)

	last := -1
	for i, line := range lines {
		var snap struct {
			Percent int    `json:"percent"`
			State   string `json:"state"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &snap))
		assert.GreaterOrEqual(t, snap.Percent, last)
		last = snap.Percent

		if i == 0 {
			assert.Equal(t, 0, snap.Percent)
		}
		if i == len(lines)-1 {
			assert.Equal(t, 100, snap.Percent)
			assert.Equal(t, "complete", snap.State)
		} else {
			assert.Equal(t, "running", snap.State)
		}
	}
}

func TestRunSimulateSeedIsReproducible(t *testing.T) {
	tests := map[string]struct {
		seed string
	}{
		"A zero seed should be honoured like any other.": {seed: "0"},
		"A non-zero seed should replay the same run.":    {seed: "42"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.toml")
			args := []string{"simulate", "--format", "json", "--interval", "1ms", "--seed", test.seed}

			first, err := runCLI(t, cfgPath, args...)
			require.NoError(t, err)
			second, err := runCLI(t, cfgPath, args...)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.Contains(t, first, `"state":"complete"`)
		})
	}
}

func TestRunSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	args := []string{"auditdeck", "--config", filepath.Join(t.TempDir(), "config.toml"), "simulate", "--format", "json"}
	require.NoError(t, Run(ctx, args, strings.NewReader(""), &stdout, &stderr))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"state":"cancelled"`)
}

func TestRunConfigInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	_, err := runCLI(t, cfgPath, "config", "init")
	require.NoError(t, err)
	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "min_increment = 5")

	_, err = runCLI(t, cfgPath, "config", "init")
	assert.Error(t, err)

	_, err = runCLI(t, cfgPath, "config", "init", "--force")
	assert.NoError(t, err)

	out, err := runCLI(t, cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[progress]")
}

func TestRunConfigInitRepairsBrokenFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[progress\n"), 0600))

	_, err := runCLI(t, cfgPath, "list")
	assert.Error(t, err)

	_, err = runCLI(t, cfgPath, "config", "init", "--force")
	assert.NoError(t, err)
}
