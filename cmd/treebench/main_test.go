package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsouthworth.net/go/ordered/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func emptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "treebench.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "treebench dev\n", out)
}

func TestRunAllVariants(t *testing.T) {
	out, err := execute(t, "run", "--config", emptyConfig(t),
		"--variant", "all", "--keys", "64", "--validate-every", "1")
	require.NoError(t, err)
	for _, variant := range []string{"bst", "avl", "llrb"} {
		assert.Contains(t, out, variant)
	}
	assert.Contains(t, strings.ToLower(out), "random-64")
	assert.NotContains(t, out, " no ")
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ops.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`name: scripted
ops:
  - {op: insert, key: 1, value: one}
  - {op: delete, key: 2}
`), 0o600))

	out, err := execute(t, "run", "--config", emptyConfig(t), "--variant", "avl", "--script", script)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "scripted")
	assert.Contains(t, out, "avl")
	assert.NotContains(t, strings.ToLower(out), "llrb")
}

func TestRunRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "run", "--config", emptyConfig(t), "--variant", "splay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tree variant")

	_, err = execute(t, "run", "--config", emptyConfig(t), "--delete-ratio", "2")
	require.Error(t, err)
}

func TestDot(t *testing.T) {
	out, err := execute(t, "dot", "--config", emptyConfig(t),
		"--variant", "bst", "--keys", "3", "--order", "ascending")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph bst {\n"))
	assert.Contains(t, out, "n0:r -> n1;")
	assert.Contains(t, out, "n1:r -> n2;")

	_, err = execute(t, "dot", "--config", emptyConfig(t), "--variant", "splay")
	require.Error(t, err)
}

func TestDotRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "dot", "--config", emptyConfig(t), "--keys", "-1")
	require.ErrorIs(t, err, config.ErrInvalidKeys)

	_, err = execute(t, "dot", "--config", emptyConfig(t), "--keys", "0")
	require.ErrorIs(t, err, config.ErrInvalidKeys)

	_, err = execute(t, "dot", "--config", emptyConfig(t), "--order", "bogus")
	require.ErrorIs(t, err, config.ErrUnknownOrder)
}
