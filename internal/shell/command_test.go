package shell

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		op    Op
		arg   string
	}{
		{"q", OpQuit, ""},
		{"quit", OpQuit, ""},
		{"open example.com", OpOpen, "example.com"},
		{"o rust tutorials", OpOpen, "rust tutorials"},
		{"back", OpBack, ""},
		{"forward", OpForward, ""},
		{"fwd", OpForward, ""},
		{"reload", OpReload, ""},
		{"home", OpHome, ""},
		{"history", OpHistory, ""},
		{"hs", OpHistory, ""},
		{"clearhistory", OpClearHistory, ""},
		{"bookmark", OpBookmark, ""},
		{"bookmarks", OpBookmarks, ""},
		{"bm", OpBookmarks, ""},
		{"theme nord", OpTheme, "nord"},
		{"theme", OpTheme, ""},
		{"ask what is this page about", OpAsk, "what is this page about"},
		{"help", OpHelp, ""},
	}

	for _, tt := range tests {
		cmd, err := ParseCommand(tt.input)
		if err != nil {
			t.Errorf("ParseCommand(%q) returned error: %v", tt.input, err)
			continue
		}
		if cmd.Op != tt.op {
			t.Errorf("ParseCommand(%q): expected op %d, got %d", tt.input, tt.op, cmd.Op)
		}
		if cmd.Arg != tt.arg {
			t.Errorf("ParseCommand(%q): expected arg %q, got %q", tt.input, tt.arg, cmd.Arg)
		}
	}
}

func TestParseCommandEmpty(t *testing.T) {
	cmd, err := ParseCommand("   ")
	if err != nil {
		t.Errorf("Expected no error for empty input, got %v", err)
	}
	if cmd.Op != OpNone {
		t.Errorf("Expected OpNone for empty input, got %d", cmd.Op)
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, input := range []string{"open", "ask", "frobnicate", "xyz 1 2 3"} {
		if _, err := ParseCommand(input); err == nil {
			t.Errorf("ParseCommand(%q): expected error, got none", input)
		}
	}
}
