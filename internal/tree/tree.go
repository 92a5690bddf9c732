// Package tree supplies the binary trees that treesite renders
package tree

import (
	"encoding/json"
	"fmt"
	"os"
)

// Node is one element of a binary tree. Each child is owned by exactly one
// parent; the generation engine only reads nodes, never mutates them.
// Duplicate and negative values are allowed.
type Node struct {
	Value int   `json:"value"`
	Left  *Node `json:"left,omitempty"`
	Right *Node `json:"right,omitempty"`
}

// Sample returns the built-in example tree:
//
//	        10
//	       /  \
//	      5    15
//	     / \     \
//	    2   7     20
func Sample() *Node {
	return &Node{
		Value: 10,
		Left: &Node{
			Value: 5,
			Left:  &Node{Value: 2},
			Right: &Node{Value: 7},
		},
		Right: &Node{
			Value: 15,
			Right: &Node{Value: 20},
		},
	}
}

// Parse decodes a tree from its JSON form, e.g.
// {"value":10,"left":{"value":5},"right":{"value":15}}.
func Parse(data []byte) (*Node, error) {
	var root *Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("tree is empty")
	}
	return root, nil
}

// Load reads and parses a tree from a JSON file
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid tree file %s: %w", path, err)
	}
	return root, nil
}

// Count returns the number of nodes in the tree
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Count() + n.Right.Count()
}

// Height returns the number of edges on the longest root-to-leaf path.
// A single node has height 0; an empty tree has height -1.
func (n *Node) Height() int {
	if n == nil {
		return -1
	}
	left := n.Left.Height()
	right := n.Right.Height()
	if left > right {
		return left + 1
	}
	return right + 1
}
