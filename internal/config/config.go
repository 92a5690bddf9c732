package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	TreeFile  string // JSON tree file; empty means the built-in sample tree
	OutputDir string // Directory the site is generated into
	NullPages bool   // Generate placeholder pages for missing children
	InlineCSS bool   // Embed CSS per page instead of a shared stylesheet
	Serve     bool   // Serve the generated site with live reload
	Port      int    // Preview server port
	NoBrowser bool   // Don't auto-open browser
	Publish   bool   // Commit the generated site to a git repository
	Message   string // Commit message for -publish
	History   bool   // List recent generations and exit
	ClearHist bool   // Clear the generation history and exit
}

var (
	flagsInitialized bool
	outFlag          string
	nullPagesFlag    bool
	inlineCSSFlag    bool
	serveFlag        bool
	portFlag         int
	noBrowserFlag    bool
	publishFlag      bool
	messageFlag      string
	historyFlag      bool
	clearHistFlag    bool
)

func initFlags() {
	if flagsInitialized {
		return
	}
	flag.StringVar(&outFlag, "out", "tree_site", "Output directory for the generated site")
	flag.BoolVar(&nullPagesFlag, "null-pages", false, "Generate placeholder pages for missing children")
	flag.BoolVar(&inlineCSSFlag, "inline-css", false, "Embed CSS in every page instead of a shared stylesheet")
	flag.BoolVar(&serveFlag, "serve", false, "Serve the generated site with live reload")
	flag.IntVar(&portFlag, "port", 0, "Preview server port (default: random available)")
	flag.BoolVar(&noBrowserFlag, "no-browser", false, "Don't auto-open browser")
	flag.BoolVar(&publishFlag, "publish", false, "Commit the generated site to a git repository at the output root")
	flag.StringVar(&messageFlag, "message", "", "Commit message for -publish")
	flag.BoolVar(&historyFlag, "history", false, "List recent generations and exit")
	flag.BoolVar(&clearHistFlag, "clear-history", false, "Clear the generation history and exit")
	flagsInitialized = true
}

// Parse parses command line arguments and returns a Config
func Parse() (*Config, error) {
	initFlags()
	cfg := &Config{}

	flag.Parse()

	cfg.OutputDir = outFlag
	cfg.NullPages = nullPagesFlag
	cfg.InlineCSS = inlineCSSFlag
	cfg.Serve = serveFlag
	cfg.Port = portFlag
	cfg.NoBrowser = noBrowserFlag
	cfg.Publish = publishFlag
	cfg.Message = messageFlag
	cfg.History = historyFlag
	cfg.ClearHist = clearHistFlag

	// Optional positional argument: a JSON tree file
	if args := flag.Args(); len(args) > 0 {
		absPath, err := filepath.Abs(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tree file path: %w", err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("tree file does not exist: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("tree file is a directory: %s", absPath)
		}
		cfg.TreeFile = absPath
	}

	// If serving and no port specified, find an available one
	if cfg.Serve && cfg.Port == 0 {
		port, err := findAvailablePort()
		if err != nil {
			return nil, fmt.Errorf("failed to find available port: %w", err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// findAvailablePort finds an available port to listen on
func findAvailablePort() (int, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Variant names the active absent-child policy
func (c *Config) Variant() string {
	if c.NullPages {
		return "null-pages"
	}
	return "pruned"
}

// URL returns the full URL of the preview server
func (c *Config) URL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
