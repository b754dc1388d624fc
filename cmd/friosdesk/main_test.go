package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFriosdeskCommand(t *testing.T) {
	cmd := NewFriosdeskCommand()

	require.NotNil(t, cmd)
	assert.Equal(t, "friosdesk", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	for _, name := range []string{"chat", "dashboard", "sales", "customers", "reports", "broadcast", "status", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		require.NotNil(t, sub, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestReportsSubcommands(t *testing.T) {
	cmd := NewFriosdeskCommand()

	for _, name := range []string{"orders", "service", "salespeople"} {
		sub, _, err := cmd.Find([]string{"reports", name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}
