package treeindex

import (
	"github.com/sgostarter/i/l"
)

// Tree is the sole extension point: it reports how many children the node at
// a given path has. Pre-order successor, predecessor and bounds are all
// derived from it.
type Tree interface {
	NumberOfChildren(path Path) int
}

// Index derives pre-order traversal and index-path arithmetic over a Tree
// with variable branching factor per node.
type Index struct {
	logger l.Wrapper
	tree   Tree
}

func NewIndex(tree Tree, logger l.Wrapper) *Index {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "treeIndex"))

	if tree == nil {
		logger.Fatal("no tree")
	}

	return &Index{
		logger: logger,
		tree:   tree,
	}
}

// Start is always [0]. In an empty tree it coincides with End.
func (idx *Index) Start() Path {
	return Path{0}
}

// End is the one-component sentinel [numberOfChildren(root)], distinguishable
// from any real deeper path and never a valid element index.
func (idx *Index) End() Path {
	return Path{idx.tree.NumberOfChildren(nil)}
}

// Valid reports whether path names an element of the tree: every prefix must
// be valid and each component strictly below the parent's child count. The
// empty path denotes the implicit root, which is never a valid element index.
func (idx *Index) Valid(path Path) bool {
	if len(path) == 0 {
		return false
	}

	for level, pos := range path {
		if pos < 0 || pos >= idx.tree.NumberOfChildren(path[:level]) {
			return false
		}
	}

	return true
}

// After returns the pre-order successor: the node's first child when it has
// children, otherwise the next sibling of the nearest ancestor that has one,
// otherwise End.
func (idx *Index) After(path Path) Path {
	if !idx.Valid(path) {
		idx.logger.Fatalf("invalid path %v", path)

		return nil
	}

	if idx.tree.NumberOfChildren(path) > 0 {
		return path.Child(0)
	}

	for level := len(path) - 1; level >= 0; level-- {
		if path[level]+1 < idx.tree.NumberOfChildren(path[:level]) {
			next := make(Path, level+1)
			copy(next, path[:level+1])
			next[level]++

			return next
		}
	}

	return idx.End()
}

// Before returns the pre-order predecessor: the last descendant of the
// preceding sibling when there is one, otherwise the parent path. Before of
// Start yields the empty root path, which is not a valid element index.
// Before accepts the End sentinel so a full reverse traversal can start there.
func (idx *Index) Before(path Path) Path {
	if !idx.Valid(path) && !path.Equal(idx.End()) {
		idx.logger.Fatalf("invalid path %v", path)

		return nil
	}

	last := path[len(path)-1]

	if last == 0 {
		return path.Parent()
	}

	sibling := path.Parent().Child(last - 1)

	for {
		n := idx.tree.NumberOfChildren(sibling)
		if n == 0 {
			return sibling
		}

		sibling = sibling.Child(n - 1)
	}
}

// Walk visits every element path in pre-order, stopping early when fn
// returns false.
func (idx *Index) Walk(fn func(path Path) bool) {
	end := idx.End()

	for path := idx.Start(); !path.Equal(end); path = idx.After(path) {
		if !fn(path) {
			return
		}
	}
}
