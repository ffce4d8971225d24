package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/ribs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "ribs version "+strings.TrimSpace(ribs.Version)+"\n", out.String())
}

func TestStoreFlags(t *testing.T) {
	rootCmd.SetArgs([]string{"capsule", "ls", "--store", "memory", "--pii", "email,phone", "--log-level", "error"})
	require.NoError(t, rootCmd.Execute())

	opts := storeOptions(capsuleLsCmd)
	assert.Equal(t, "memory", opts.Backend)
	assert.Equal(t, []string{"email", "phone"}, opts.PIIFields)
}

func TestInvalidLogLevel(t *testing.T) {
	rootCmd.SetArgs([]string{"capsule", "ls", "--store", "memory", "--log-level", "loud"})
	assert.ErrorContains(t, rootCmd.Execute(), "unknown log level")
}

func TestScenarioCommands(t *testing.T) {
	const app = "../../internal/cli/testdata/app.yaml"
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs([]string{"validate", app})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Scenario 'app' is valid.")

	out.Reset()
	rootCmd.SetArgs([]string{"graph", app, "--log-level", "error"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `Home -- "push" --> Profile`)
}
