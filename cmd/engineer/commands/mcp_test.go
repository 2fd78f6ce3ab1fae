// ABOUTME: Tests for MCP command structure
// ABOUTME: Verifies MCP command configuration

package commands

import (
	"strings"
	"testing"
)

func TestNewMCPCmd(t *testing.T) {
	cmd := NewMCPCmd()

	if cmd.Use != "mcp" {
		t.Errorf("Use = %q, want %q", cmd.Use, "mcp")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
}

func TestMCPCmd_Description(t *testing.T) {
	cmd := NewMCPCmd()

	for _, want := range []string{"MCP", "LLM", "stdio"} {
		if !strings.Contains(cmd.Long, want) {
			t.Errorf("Long description should mention %q", want)
		}
	}

	if !strings.Contains(cmd.Example, "mcpServers") {
		t.Error("Example should show MCP client configuration")
	}
}
