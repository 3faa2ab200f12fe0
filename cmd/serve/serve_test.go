package serve

import (
	"testing"
)

func TestGetCommand(t *testing.T) {
	t.Parallel()

	cmd := GetCommand()

	if cmd == nil {
		t.Fatal("GetCommand() returned nil")
	}

	if cmd.Name != "serve" {
		t.Errorf("command name = %q; want %q", cmd.Name, "serve")
	}

	if cmd.Action == nil {
		t.Error("command action should not be nil")
	}
}

func TestGetFlags(t *testing.T) {
	t.Parallel()

	flags := getFlags()

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		if names := flag.Names(); len(names) > 0 {
			flagNames[names[0]] = true
		}
	}

	expectedFlags := []string{"script", "key", "verbose", "timeout", "log"}
	for _, name := range expectedFlags {
		if !flagNames[name] {
			t.Errorf("expected flag %q not found", name)
		}
	}
}
