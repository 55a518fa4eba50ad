// Package filetree builds the sorted directory hierarchy shown in the
// report's navigation pane.
package filetree

import (
	"sort"
	"strings"
)

// Node is a directory or file. A node without children is a file.
type Node struct {
	Name     string
	Children []*Node
}

// IsFile reports whether the node is a leaf.
func (n *Node) IsFile() bool {
	return len(n.Children) == 0
}

// FromPaths builds a tree rooted at rootName from slash-separated relative
// paths. Empty segments are ignored. The result is not sorted; call Sort.
func FromPaths(paths []string, rootName string) *Node {
	root := &Node{Name: rootName}
	for _, p := range paths {
		current := root
		for _, segment := range strings.Split(p, "/") {
			if segment == "" || segment == "." {
				continue
			}
			current = current.child(segment)
		}
	}
	return root
}

func (n *Node) child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &Node{Name: name}
	n.Children = append(n.Children, c)
	return c
}

// Sort orders children recursively: directories before files, then by
// case-insensitive name, with the exact name breaking ties.
func (n *Node) Sort() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsFile() != b.IsFile() {
			return !a.IsFile()
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
	for _, c := range n.Children {
		c.Sort()
	}
}

// Walk calls fn for every node in depth-first order with the slash-joined
// path of the node, starting with the root's own name.
func (n *Node) Walk(fn func(path string, node *Node)) {
	n.walk(n.Name, fn)
}

func (n *Node) walk(path string, fn func(string, *Node)) {
	fn(path, n)
	for _, c := range n.Children {
		c.walk(path+"/"+c.Name, fn)
	}
}
