package gapscan

import "strings"

// HeadingNode is one heading in a document outline together with the
// body text that follows it. Nodes form an ordered forest per document.
// A node's children always have strictly greater levels than the node
// itself: the level-stack builder closes every open node whose level is
// >= a new heading's level before inserting it.
//
// A forest is built once per fetched document and never mutated after
// construction.
type HeadingNode struct {
	Level    int            `json:"level"`
	Header   string         `json:"header"`
	Content  string         `json:"content"`
	Children []*HeadingNode `json:"children,omitempty"`
}

// FlatNode is a flattened view of a HeadingNode with its parent header.
type FlatNode struct {
	Level    int
	Header   string
	Content  string
	Parent   string
	Children []*HeadingNode
}

// Flatten walks the forest depth-first in document order.
func Flatten(nodes []*HeadingNode) []FlatNode {
	var out []FlatNode
	var walk func(n *HeadingNode, parent string)
	walk = func(n *HeadingNode, parent string) {
		out = append(out, FlatNode{
			Level:    n.Level,
			Header:   n.Header,
			Content:  n.Content,
			Parent:   parent,
			Children: n.Children,
		})
		for _, c := range n.Children {
			walk(c, n.Header)
		}
	}
	for _, n := range nodes {
		walk(n, "")
	}
	return out
}

// treeBuilder assembles a forest via a level stack. A new heading
// closes all open nodes whose level is >= its own, which guarantees the
// strictly-increasing-level invariant along every root-to-leaf path.
type treeBuilder struct {
	roots []*HeadingNode
	stack []*HeadingNode
}

func (b *treeBuilder) add(node *HeadingNode) {
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].Level >= node.Level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	if len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		top.Children = append(top.Children, node)
	} else {
		b.roots = append(b.roots, node)
	}
	b.stack = append(b.stack, node)
}

// HeadingsBlob returns all non-noise headers of the forest joined with
// " | ", in document order.
func HeadingsBlob(lex *Lexicon, nodes []*HeadingNode) string {
	var hs []string
	for _, x := range Flatten(nodes) {
		h := CleanText(x.Header)
		if h != "" && !lex.IsNoiseHeader(h) {
			hs = append(hs, h)
		}
	}
	return CleanText(strings.Join(hs, " | "))
}

// FirstH1 returns the first level-1 header of the forest, falling back
// to the first level-2 header.
func FirstH1(nodes []*HeadingNode) string {
	flat := Flatten(nodes)
	for _, lvl := range []int{1, 2} {
		for _, x := range flat {
			if x.Level == lvl {
				if h := CleanText(x.Header); h != "" {
					return h
				}
			}
		}
	}
	return ""
}
