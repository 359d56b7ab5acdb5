package treeindex

// Path identifies a node by walking from the tree's implicit root, choosing
// the n-th child at each level. The empty path denotes the root itself.
type Path []int

// Parent returns the path with the last component dropped. The returned path
// shares no storage with the receiver.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}

	parent := make(Path, len(p)-1)
	copy(parent, p[:len(p)-1])

	return parent
}

// Child returns the path extended by one component. The returned path shares
// no storage with the receiver.
func (p Path) Child(n int) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = n

	return child
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}

	for idx, pos := range p {
		if pos != other[idx] {
			return false
		}
	}

	return true
}
