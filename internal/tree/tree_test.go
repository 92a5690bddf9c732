package tree

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSample(t *testing.T) {
	root := Sample()

	if root.Value != 10 {
		t.Errorf("root value = %d, want 10", root.Value)
	}
	if root.Left == nil || root.Left.Value != 5 {
		t.Fatal("root.left should be 5")
	}
	if root.Right == nil || root.Right.Value != 15 {
		t.Fatal("root.right should be 15")
	}
	if root.Left.Left == nil || root.Left.Left.Value != 2 {
		t.Error("root.left.left should be 2")
	}
	if root.Left.Right == nil || root.Left.Right.Value != 7 {
		t.Error("root.left.right should be 7")
	}
	if root.Right.Left != nil {
		t.Error("root.right.left should be absent")
	}
	if root.Right.Right == nil || root.Right.Right.Value != 20 {
		t.Error("root.right.right should be 20")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SingleNode", `{"value":42}`, false},
		{"NestedTree", `{"value":1,"left":{"value":-2},"right":{"value":1}}`, false},
		{"NegativeValue", `{"value":-99}`, false},
		{"NullTree", `null`, true},
		{"EmptyInput", ``, true},
		{"NotJSON", `not json`, true},
		{"WrongValueType", `{"value":"ten"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && root == nil {
				t.Error("Parse returned nil root without error")
			}
		})
	}
}

func TestParseDuplicatesAllowed(t *testing.T) {
	root, err := Parse([]byte(`{"value":7,"left":{"value":7},"right":{"value":7}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if root.Value != 7 || root.Left.Value != 7 || root.Right.Value != 7 {
		t.Error("duplicate values should be preserved")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	treeFile := filepath.Join(tmpDir, "tree.json")
	if err := os.WriteFile(treeFile, []byte(`{"value":3,"left":{"value":1}}`), 0644); err != nil {
		t.Fatalf("Failed to write tree file: %v", err)
	}

	root, err := Load(treeFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if root.Value != 3 {
		t.Errorf("root value = %d, want 3", root.Value)
	}
	if root.Left == nil || root.Left.Value != 1 {
		t.Error("root.left should be 1")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want int
	}{
		{"Nil", nil, 0},
		{"Single", &Node{Value: 1}, 1},
		{"Sample", Sample(), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeight(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want int
	}{
		{"Nil", nil, -1},
		{"Single", &Node{Value: 1}, 0},
		{"Sample", Sample(), 2},
		{"Degenerate", &Node{Value: 1, Left: &Node{Value: 2, Left: &Node{Value: 3}}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Height(); got != tt.want {
				t.Errorf("Height() = %d, want %d", got, tt.want)
			}
		})
	}
}
