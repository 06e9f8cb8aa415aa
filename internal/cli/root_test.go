package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ipaglot", cmd.Use)
	assert.Contains(t, cmd.Long, "rewrite tables")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"transcribe", "languages", "rules", "check", "audit", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestTranscribeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	transcribeCmd, _, err := cmd.Find([]string{"transcribe"})
	require.NoError(t, err)

	for _, name := range []string{"lang", "pack", "trace", "audit-db"} {
		flag := transcribeCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag --%s should exist", name)
	}

	traceFlag := transcribeCmd.Flags().Lookup("trace")
	assert.Equal(t, "false", traceFlag.DefValue)
}

func TestRulesCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	rulesCmd, _, err := cmd.Find([]string{"rules"})
	require.NoError(t, err)

	langFlag := rulesCmd.Flags().Lookup("lang")
	require.NotNil(t, langFlag)
	// --lang is required, so default is empty
	assert.Equal(t, "", langFlag.DefValue)
}

func TestCheckCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	checkCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	strictFlag := checkCmd.Flags().Lookup("strict")
	require.NotNil(t, strictFlag)
	assert.Equal(t, "false", strictFlag.DefValue)
}

func TestAuditCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	auditCmd, _, err := cmd.Find([]string{"audit"})
	require.NoError(t, err)

	dbFlag := auditCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)

	langFlag := auditCmd.Flags().Lookup("lang")
	require.NotNil(t, langFlag)
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	filterFlag := testCmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
	assert.Equal(t, "", filterFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "languages"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
