package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintUsageListsEveryCommand(t *testing.T) {
	var buf strings.Builder
	printUsage(&buf)

	out := buf.String()
	require.Contains(t, out, "usage: menuboard-admin")
	for name := range commands() {
		require.Contains(t, out, name)
	}
}

func TestConfirmActionSkipsPromptWithYes(t *testing.T) {
	require.NoError(t, confirmAction(true, "drop everything"))
}

func TestCommandsHaveRunFuncs(t *testing.T) {
	for name, cmd := range commands() {
		require.NotNil(t, cmd.run, "command %s has no run func", name)
		require.Equal(t, name, cmd.name)
	}
}
