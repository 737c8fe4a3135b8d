package visualizer

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuanyiying/movr/internal/fsoracle"
	"github.com/xuanyiying/movr/internal/output"
	"github.com/xuanyiying/movr/internal/plan"
)

// AncestorNode is one directory in the tree of ancestors a "parent -> create"
// controlled pair will bring into existence, adapted from the teacher's
// TreeNode for the ancestor-of-New preview spec.md §4.6 calls for instead
// of a generic directory listing.
type AncestorNode struct {
	Name       string
	Path       string
	WillCreate bool
	Children   []*AncestorNode
	depth      int
}

// TreeOptions configures tree rendering.
type TreeOptions struct {
	UseColor   bool
	UseUnicode bool
	IndentSize int
}

// TreeVisualizer renders the ancestor-directory tree for a plan preview.
type TreeVisualizer struct {
	console *output.Console
	styler  *output.Styler
	options *TreeOptions
}

// Branch characters for tree rendering.
const (
	BranchVertical   = "│"
	BranchHorizontal = "──"
	BranchCorner     = "└"
	BranchTee        = "├"

	BranchVerticalASCII   = "|"
	BranchHorizontalASCII = "--"
	BranchCornerASCII     = "`"
	BranchTeeASCII        = "+"
)

// NewTreeVisualizer builds a TreeVisualizer.
func NewTreeVisualizer(console *output.Console, options *TreeOptions) *TreeVisualizer {
	if options == nil {
		options = &TreeOptions{UseColor: true, UseUnicode: true, IndentSize: 3}
	}
	return &TreeVisualizer{
		console: console,
		styler:  output.NewStyler(options.UseColor),
		options: options,
	}
}

// BuildAncestorTree builds the tree of ancestor directories that executing
// pairs will create: every RenamePair with CreateParent=true contributes
// the ancestor chain of its New path. oracle decides whether each ancestor
// already exists (rendered plain) or will be newly created (marked).
func (v *TreeVisualizer) BuildAncestorTree(pairs []plan.RenamePair, oracle fsoracle.Oracle) *AncestorNode {
	root := &AncestorNode{Name: ".", Path: ".", depth: 0}
	nodes := map[string]*AncestorNode{".": root}

	var dirs []string
	seen := make(map[string]bool)
	for _, p := range pairs {
		if !p.CreateParent {
			continue
		}
		for dir := fsoracle.ParentOf(p.New); dir != "." && dir != string(filepath.Separator); dir = fsoracle.ParentOf(dir) {
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		ensureAncestorNode(nodes, dir, oracle)
	}
	return root
}

func ensureAncestorNode(nodes map[string]*AncestorNode, dir string, oracle fsoracle.Oracle) *AncestorNode {
	if n, ok := nodes[dir]; ok {
		return n
	}
	parentPath := fsoracle.ParentOf(dir)
	parent := ensureAncestorNode(nodes, parentPath, oracle)

	node := &AncestorNode{
		Name:       filepath.Base(dir),
		Path:       dir,
		WillCreate: oracle == nil || !oracle.Exists(dir, false),
		depth:      parent.depth + 1,
	}
	parent.Children = append(parent.Children, node)
	nodes[dir] = node
	return node
}

// Render renders root as a branch-drawn tree string.
func (v *TreeVisualizer) Render(root *AncestorNode) string {
	var b strings.Builder
	v.renderNode(root, "", true, &b)
	return b.String()
}

// RenderToWriter renders root to w.
func (v *TreeVisualizer) RenderToWriter(root *AncestorNode, w io.Writer) error {
	_, err := w.Write([]byte(v.Render(root)))
	return err
}

func (v *TreeVisualizer) renderNode(node *AncestorNode, prefix string, isLast bool, b *strings.Builder) {
	vertical, horizontal, corner, tee := BranchVertical, BranchHorizontal, BranchCorner, BranchTee
	if !v.options.UseUnicode {
		vertical, horizontal, corner, tee = BranchVerticalASCII, BranchHorizontalASCII, BranchCornerASCII, BranchTeeASCII
	}

	var line strings.Builder
	line.WriteString(prefix)
	if node.depth > 0 {
		if isLast {
			line.WriteString(corner + horizontal + " ")
		} else {
			line.WriteString(tee + horizontal + " ")
		}
	}

	name := node.Name + "/"
	if node.WillCreate {
		if v.options.UseColor {
			name = v.styler.Green(name) + " " + v.styler.Dim("(new)")
		} else {
			name = name + " (new)"
		}
	} else if v.options.UseColor {
		name = v.styler.Blue(name)
	}
	line.WriteString(name)

	b.WriteString(line.String())
	b.WriteString("\n")

	for i, child := range node.Children {
		isChildLast := i == len(node.Children)-1
		var childPrefix string
		if isLast {
			childPrefix = prefix + strings.Repeat(" ", v.options.IndentSize)
		} else {
			childPrefix = prefix + vertical + strings.Repeat(" ", v.options.IndentSize-1)
		}
		v.renderNode(child, childPrefix, isChildLast, b)
	}
}
