package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dinghy-browser/dinghy/internal/logging"
	"github.com/dinghy-browser/dinghy/internal/shell"
	"github.com/dinghy-browser/dinghy/internal/storage"
	"github.com/dinghy-browser/dinghy/internal/theme"
)

var version = "0.1.0"

func main() {
	var (
		themeName   string
		showVersion bool
	)

	flag.StringVar(&themeName, "theme", "", "color theme (overrides the config file)")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dinghy - a small boat for the open web\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dinghy [flags] [address]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dinghy                        # start with the welcome screen\n")
		fmt.Fprintf(os.Stderr, "  dinghy https://example.com    # open a URL\n")
		fmt.Fprintf(os.Stderr, "  dinghy golang.org             # auto-adds https://\n")
		fmt.Fprintf(os.Stderr, "  dinghy how to use goroutines  # search the web\n")
		fmt.Fprintf(os.Stderr, "  dinghy -theme nord            # use the nord theme\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("dinghy %s\n", version)
		os.Exit(0)
	}

	cfg, err := storage.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		defaults := storage.DefaultConfig()
		cfg = &defaults
	}

	// The flag wins over the config file.
	if themeName == "" {
		themeName = cfg.Theme
	}
	if themeName != "" && !theme.Set(themeName) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n",
			themeName, strings.Join(theme.List(), ", "))
		os.Exit(1)
	}

	// Log to a file in the data directory; the TUI owns the terminal.
	logPath := ""
	if dataDir, derr := storage.DataDir(); derr == nil {
		logPath = filepath.Join(dataDir, "dinghy.log")
	}
	logger := logging.NewFile(logPath)
	defer logger.Sync()

	// Everything after the flags is the start address or a search.
	startURL := strings.Join(flag.Args(), " ")

	logger.Info("starting dinghy",
		zap.String("version", version),
		zap.String("start", startURL),
	)

	m := shell.New(startURL, cfg, logger)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		logger.Error("fatal", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
