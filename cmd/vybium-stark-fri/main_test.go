package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := rootCommand()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestProveVerifyInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proof.bin")
	common := []string{"--air", "bit-flag", "--length", "16", "--value", "1234", "--queries", "8", "--hash", "blake3"}

	_, err := run(t, append([]string{"prove", "--out", path}, common...)...)
	require.NoError(t, err)

	_, err = run(t, append([]string{"verify", path}, common...)...)
	require.NoError(t, err)

	_, err = run(t, "verify", path, "--air", "bit-flag", "--length", "16", "--value", "1235", "--queries", "8", "--hash", "blake3")
	require.ErrorIs(t, err, errRejected)

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	var summary proofSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.Equal(t, 8, summary.Queries)
	require.Equal(t, 2, summary.FrameSize)
	require.Equal(t, 1, summary.TraceColumns)
}

func TestProveRejectsBadFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proof.bin")

	_, err := run(t, "prove", "--out", path, "--air", "collatz")
	require.ErrorContains(t, err, "unknown AIR")

	_, err = run(t, "prove", "--out", path, "--blowup", "3")
	require.Error(t, err)

	_, err = run(t, "prove", "--out", path, "--air", "bit-flag", "--length", "8", "--value", "1000")
	require.Error(t, err)

	_, err = run(t, "inspect", filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}
