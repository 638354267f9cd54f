package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// pairModel prefers both variables in state 1, then both in state 0.
const pairModel = `MARKOV
2
2 2
1
2 0 1
4
2 1 1 3
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunWritesResult(t *testing.T) {
	dir := t.TempDir()
	modelPath := writeFile(t, dir, "pair.uai", pairModel)
	progressPath := filepath.Join(dir, "progress.log")
	cfgPath := writeFile(t, dir, "mplp.yaml", "output:\n  progress_log: "+progressPath+"\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "-out", dir, modelPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stderr.String(), `"msg":"done"`)

	data, err := os.ReadFile(filepath.Join(dir, "pair.uai.MPE"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Equal(t, "MPE", lines[0])
	require.Equal(t, "2 1 1", lines[len(lines)-1])

	progress, err := os.ReadFile(progressPath)
	require.NoError(t, err)
	require.NotEmpty(t, progress)
}

func TestRunEvidence(t *testing.T) {
	dir := t.TempDir()
	modelPath := writeFile(t, dir, "pair.uai", pairModel)
	evPath := writeFile(t, dir, "pair.evid", "1 0 0\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-out", dir, "-log-format", "text", modelPath, evPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(filepath.Join(dir, "pair.uai.MPE"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Equal(t, "2 0 0", lines[len(lines)-1])
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	require.Contains(t, stdout.String(), "mplp "+version)

	require.Equal(t, 2, run(nil, &stdout, &stderr))
	require.Equal(t, 2, run([]string{"-log-level", "loud", "m.uai"}, &stdout, &stderr))
	require.Equal(t, 2, run([]string{"m.uai", "", "x"}, &stdout, &stderr))
	require.Equal(t, 2, run([]string{"-init"}, &stdout, &stderr))

	dir := t.TempDir()
	require.Equal(t, 1, run([]string{"-out", dir, filepath.Join(dir, "absent.uai")}, &stdout, &stderr))
}

func TestRunInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mplp.yaml")
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", path, "-init"}, &stdout, &stderr))
	require.FileExists(t, path)
	require.Contains(t, stdout.String(), path)
}
