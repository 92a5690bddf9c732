package site

import (
	"fmt"
	"os"
	"path/filepath"

	"treesite/internal/tree"
)

// Relative link from a child's page back to its parent's page. Every child
// directory sits exactly one level below its parent, so this never varies.
const parentPageLink = "../index.html"

// Builder materializes a tree as a directory structure, depth-first and
// left before right. With nullPages enabled it descends one level past every
// missing child and writes a placeholder page there; otherwise missing
// children produce no directory at all.
type Builder struct {
	outputDir string
	nullPages bool
	renderer  *Renderer
	result    Result
}

// Result summarizes one generation run
type Result struct {
	Pages int
	Dirs  int
}

// NewBuilder creates a Builder writing into outputDir
func NewBuilder(outputDir string, renderer *Renderer, nullPages bool) *Builder {
	return &Builder{
		outputDir: outputDir,
		nullPages: nullPages,
		renderer:  renderer,
	}
}

// Clean deletes and recreates the output directory
func Clean(outputDir string) error {
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("failed to remove output directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Build writes the whole site for the tree rooted at root. Any directory or
// file error aborts the run immediately; a partially written site may remain.
func (b *Builder) Build(root *tree.Node) (Result, error) {
	if root == nil {
		return Result{}, fmt.Errorf("cannot build a site from an empty tree")
	}

	b.result = Result{}

	// The shared stylesheet is written exactly once, before traversal.
	if !b.renderer.InlineCSS {
		if err := os.MkdirAll(b.outputDir, 0755); err != nil {
			return Result{}, fmt.Errorf("failed to create output directory: %w", err)
		}
		cssPath := filepath.Join(b.outputDir, StylesheetName)
		if err := os.WriteFile(cssPath, []byte(Stylesheet()), 0644); err != nil {
			return Result{}, fmt.Errorf("failed to write stylesheet: %w", err)
		}
	}

	if err := b.build(root, b.outputDir, "", 0); err != nil {
		return Result{}, err
	}
	return b.result, nil
}

// build generates the page for one position and recurses into its children.
// node is nil only in the null-page variant, for a missing child.
func (b *Builder) build(node *tree.Node, dir, parentLink string, depth int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	b.result.Dirs++

	if node == nil {
		// Null placeholder: recursion stops here.
		content, err := b.renderer.RenderNull(parentLink, depth)
		if err != nil {
			return err
		}
		return b.writePage(dir, content)
	}

	content, err := b.renderer.RenderNode(node, parentLink, depth)
	if err != nil {
		return err
	}
	if err := b.writePage(dir, content); err != nil {
		return err
	}

	if node.Left != nil || b.nullPages {
		if err := b.build(node.Left, filepath.Join(dir, "left"), parentPageLink, depth+1); err != nil {
			return err
		}
	}
	if node.Right != nil || b.nullPages {
		if err := b.build(node.Right, filepath.Join(dir, "right"), parentPageLink, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) writePage(dir, content string) error {
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	b.result.Pages++
	return nil
}
