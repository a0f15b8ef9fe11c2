package shell

import (
	"fmt"
	"strings"
)

// Op identifies a shell operation triggered from the command bar.
type Op int

const (
	OpNone Op = iota
	OpQuit
	OpOpen
	OpBack
	OpForward
	OpReload
	OpHome
	OpHistory
	OpClearHistory
	OpBookmark
	OpBookmarks
	OpTheme
	OpAsk
	OpHelp
)

// Command is a parsed ex command.
type Command struct {
	Op  Op
	Arg string
}

// ParseCommand parses a : command line. Empty input parses to OpNone so the
// shell can ignore it; unknown names and missing arguments return an error
// whose text is shown in the status bar.
func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{Op: OpNone}, nil
	}

	name := fields[0]
	arg := strings.Join(fields[1:], " ")

	switch name {
	case "q", "quit":
		return Command{Op: OpQuit}, nil
	case "o", "open":
		if arg == "" {
			return Command{}, fmt.Errorf("usage: :open <address>")
		}
		return Command{Op: OpOpen, Arg: arg}, nil
	case "back":
		return Command{Op: OpBack}, nil
	case "forward", "fwd":
		return Command{Op: OpForward}, nil
	case "reload":
		return Command{Op: OpReload}, nil
	case "home":
		return Command{Op: OpHome}, nil
	case "history", "hs":
		return Command{Op: OpHistory}, nil
	case "clearhistory":
		return Command{Op: OpClearHistory}, nil
	case "bookmark":
		return Command{Op: OpBookmark}, nil
	case "bookmarks", "bm":
		return Command{Op: OpBookmarks}, nil
	case "theme":
		return Command{Op: OpTheme, Arg: arg}, nil
	case "ask":
		if arg == "" {
			return Command{}, fmt.Errorf("usage: :ask <question>")
		}
		return Command{Op: OpAsk, Arg: arg}, nil
	case "help":
		return Command{Op: OpHelp}, nil
	}

	return Command{}, fmt.Errorf("unknown command: %s", name)
}
