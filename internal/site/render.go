// Package site turns a binary tree into a static website: one directory per
// node, each with an index.html linking to its parent and children.
package site

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"treesite/internal/tree"
)

//go:embed page.html
var pageTemplate string

//go:embed styles.css
var stylesheet string

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// StylesheetName is the filename of the shared stylesheet at the output root
const StylesheetName = "styles.css"

// Renderer produces the content of a single page. It performs no I/O;
// writing pages to disk is the Builder's job.
type Renderer struct {
	InlineCSS  bool // embed the stylesheet in every page instead of linking it
	LiveReload bool // include the preview server's live-reload script
}

type pageData struct {
	Title      string
	Display    string
	CSSPath    string
	InlineCSS  template.CSS
	ParentLink string
	HasLeft    bool
	HasRight   bool
	LiveReload bool
}

// StylesheetPath returns the relative path from a page at the given depth to
// the shared stylesheet at the output root: "../" repeated depth times.
func StylesheetPath(depth int) string {
	return strings.Repeat("../", depth) + StylesheetName
}

// Stylesheet returns the shared CSS content
func Stylesheet() string {
	return stylesheet
}

// RenderNode renders the page for a real tree node. The page links to
// left/index.html and right/index.html only for children that exist, and to
// parentLink only when it is non-empty (every page except the root's).
func (r *Renderer) RenderNode(n *tree.Node, parentLink string, depth int) (string, error) {
	return r.render(pageData{
		Title:      fmt.Sprintf("Node %d", n.Value),
		Display:    strconv.Itoa(n.Value),
		ParentLink: parentLink,
		HasLeft:    n.Left != nil,
		HasRight:   n.Right != nil,
	}, depth)
}

// RenderNull renders a placeholder page for a missing child. Null pages are
// never the root, so they always carry a parent link and nothing else.
func (r *Renderer) RenderNull(parentLink string, depth int) (string, error) {
	return r.render(pageData{
		Title:      "Null node",
		Display:    "null",
		ParentLink: parentLink,
	}, depth)
}

func (r *Renderer) render(data pageData, depth int) (string, error) {
	if r.InlineCSS {
		data.InlineCSS = template.CSS(stylesheet)
	} else {
		data.CSSPath = StylesheetPath(depth)
	}
	data.LiveReload = r.LiveReload

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}
