// Package rangemerge flattens nested annotated ranges into a gap-free
// sequence of non-overlapping leaves.
//
// Ranges added to a Merger must nest: any two of them are either disjoint
// or one contains the other. Insertion order does not matter; a range that
// arrives after several of its descendants adopts them.
package rangemerge

import (
	"fmt"
	"slices"
	"sort"

	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// Annotated is a range carrying a tag.
type Annotated[T any] struct {
	Range textrange.Range
	Tag   T
}

// Leaf is one piece of flattened output. Tagged is false for gaps that no
// annotation covers.
type Leaf[T any] struct {
	Range  textrange.Range
	Tag    T
	Tagged bool
}

// ContainmentError reports a range that is not contained in the node it was
// inserted into. Merger panics with it; the range set was not properly nested.
type ContainmentError struct {
	Parent textrange.Range
	Child  textrange.Range
}

func (e *ContainmentError) Error() string {
	return fmt.Sprintf("range %s is not contained in %s", e.Child, e.Parent)
}

type node[T any] struct {
	rng      textrange.Range
	tag      T
	tagged   bool
	children []*node[T]
}

// Merger is an interval tree over one file. It is not safe for concurrent use.
type Merger[T any] struct {
	root *node[T]
}

// New returns a merger whose untagged root spans root.
func New[T any](root textrange.Range) *Merger[T] {
	return &Merger[T]{root: &node[T]{rng: root}}
}

// Add inserts an annotated range. Empty ranges are ignored once they pass
// the containment check.
//
// Add panics with *ContainmentError when r is not inside the root, or when
// r partially overlaps a range added earlier.
func (m *Merger[T]) Add(r textrange.Range, tag T) {
	if !m.root.rng.Contains(r) {
		panic(&ContainmentError{Parent: m.root.rng, Child: r})
	}
	if r.IsEmpty() {
		return
	}
	m.root.add(&node[T]{rng: r, tag: tag, tagged: true})
}

// AddAll inserts every annotated range in order.
func (m *Merger[T]) AddAll(ranges []Annotated[T]) {
	for _, a := range ranges {
		m.Add(a.Range, a.Tag)
	}
}

func (n *node[T]) add(child *node[T]) {
	if !n.rng.Contains(child.rng) {
		panic(&ContainmentError{Parent: n.rng, Child: child.rng})
	}

	if len(n.children) > 0 {
		last := n.children[len(n.children)-1]
		if last.rng.Contains(child.rng) {
			last.add(child)
			return
		}
		if last.rng.End <= child.rng.Start {
			n.children = append(n.children, child)
			return
		}
	}

	// [lo, hi) is the block of children overlapping the new range.
	lo := sort.Search(len(n.children), func(i int) bool {
		return textrange.Compare(n.children[i].rng, child.rng) != textrange.Less
	})
	hi := sort.Search(len(n.children), func(i int) bool {
		return textrange.Compare(n.children[i].rng, child.rng) == textrange.Greater
	})

	if hi-lo == 1 && n.children[lo].rng.Contains(child.rng) {
		n.children[lo].add(child)
		return
	}

	adopted := slices.Clone(n.children[lo:hi])
	for _, c := range adopted {
		if !child.rng.Contains(c.rng) {
			panic(&ContainmentError{Parent: child.rng, Child: c.rng})
		}
	}
	child.children = append(child.children, adopted...)
	n.children = slices.Replace(n.children, lo, hi, child)
}

// Flatten returns the leaves of the tree in source order. The leaves are
// contiguous and cover the root range exactly; each carries the tag of its
// innermost enclosing annotation.
func (m *Merger[T]) Flatten() []Leaf[T] {
	return m.root.flatten(nil)
}

func (n *node[T]) flatten(out []Leaf[T]) []Leaf[T] {
	cursor := n.rng.Start
	for _, c := range n.children {
		if c.rng.Start > cursor {
			out = append(out, n.leaf(cursor, c.rng.Start))
		}
		out = c.flatten(out)
		cursor = c.rng.End
	}
	if n.rng.End > cursor {
		out = append(out, n.leaf(cursor, n.rng.End))
	}
	return out
}

func (n *node[T]) leaf(start, end int) Leaf[T] {
	return Leaf[T]{Range: textrange.New(start, end), Tag: n.tag, Tagged: n.tagged}
}
