package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"treesite/internal/config"
	"treesite/internal/history"
	"treesite/internal/publish"
	"treesite/internal/server"
	"treesite/internal/site"
	"treesite/internal/tree"

	"github.com/pkg/browser"
)

func main() {
	// Parse configuration
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.History || cfg.ClearHist {
		if err := runHistory(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	root, err := loadTree(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := generate(cfg, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating site: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d pages for %d nodes (height %d, %s variant) in %s\n",
		result.Pages, root.Count(), root.Height(), cfg.Variant(), cfg.OutputDir)
	fmt.Println("Open 'index.html' inside that folder in your browser to explore the tree.")

	// Record this run; history is a convenience, not a hard requirement
	if manager, err := history.New(); err != nil {
		log.Printf("Warning: failed to initialize history: %v", err)
	} else if _, err := manager.Record(cfg.OutputDir, cfg.Variant(), result.Pages, root.Count()); err != nil {
		log.Printf("Warning: failed to record generation: %v", err)
	}

	if cfg.Publish {
		if !publish.IsRepository(cfg.OutputDir) {
			fmt.Printf("Initializing repository in %s\n", cfg.OutputDir)
		}

		res, err := publish.Commit(cfg.OutputDir, cfg.Message)
		switch {
		case errors.Is(err, publish.ErrNoChanges):
			fmt.Println("Nothing to publish: site unchanged.")
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error publishing site: %v\n", err)
			os.Exit(1)
		default:
			fmt.Printf("Published snapshot %s (commit %s)\n", res.BuildID, res.Hash[:8])
		}
	}

	if !cfg.Serve {
		return
	}

	// rebuild re-reads the tree file so edits show up in the preview
	rebuild := func() error {
		root, err := loadTree(cfg)
		if err != nil {
			return err
		}
		_, err = generate(cfg, root)
		return err
	}

	srv, err := server.New(cfg, rebuild)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	// Channel to listen for errors from server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		serverErrors <- srv.Start()
	}()

	// Open browser after a short delay (to ensure server is ready)
	if !cfg.NoBrowser {
		go func() {
			time.Sleep(200 * time.Millisecond)
			url := cfg.URL()
			fmt.Printf("\n  Previewing the site at: %s\n\n", url)
			if err := browser.OpenURL(url); err != nil {
				log.Printf("Failed to open browser: %v", err)
			}
		}()
	} else {
		fmt.Printf("\n  Previewing the site at: %s\n\n", cfg.URL())
	}

	// Channel to listen for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Printf("Received signal %v, shutting down...", sig)

		// Give outstanding requests 5 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
			os.Exit(1)
		}
	}

	fmt.Println("Preview stopped.")
}

// runHistory lists or clears the recorded generations
func runHistory(cfg *config.Config) error {
	manager, err := history.New()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	if cfg.ClearHist {
		if err := manager.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	}

	entries := manager.All()
	if len(entries) == 0 {
		fmt.Println("No generations recorded yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-10s  %3d nodes  %3d pages  %s\n",
			e.GeneratedAt.Format("2006-01-02 15:04"), e.Variant, e.Nodes, e.Pages, e.OutputDir)
	}
	return nil
}

// loadTree returns the tree to render: the JSON file from the command line,
// or the built-in sample tree when none was given.
func loadTree(cfg *config.Config) (*tree.Node, error) {
	if cfg.TreeFile == "" {
		return tree.Sample(), nil
	}
	return tree.Load(cfg.TreeFile)
}

// generate clears the output root and writes the whole site into it
func generate(cfg *config.Config, root *tree.Node) (site.Result, error) {
	if err := site.Clean(cfg.OutputDir); err != nil {
		return site.Result{}, err
	}

	renderer := &site.Renderer{
		InlineCSS:  cfg.InlineCSS,
		LiveReload: cfg.Serve,
	}
	builder := site.NewBuilder(cfg.OutputDir, renderer, cfg.NullPages)

	return builder.Build(root)
}
