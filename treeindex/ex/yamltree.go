package ex

import (
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libobservable/treeindex"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Node is one element of a static tree described in YAML. A node is written
// either as a bare scalar (a leaf title) or as a mapping with a title and an
// optional children list.
type Node struct {
	Title    string
	Children []*Node
}

// YAMLTree is a treeindex.Tree built from a YAML document of nested
// children. Handy for static hierarchies and test fixtures:
//
//	children:
//	  - section one
//	  - title: section two
//	    children:
//	      - item a
//	      - item b
type YAMLTree struct {
	roots []*Node
}

func NewYAMLTree(d []byte) (*YAMLTree, error) {
	var doc map[string]interface{}

	if err := yaml.Unmarshal(d, &doc); err != nil {
		return nil, err
	}

	roots, err := buildNodes(doc["children"])
	if err != nil {
		return nil, err
	}

	return &YAMLTree{
		roots: roots,
	}, nil
}

func buildNodes(v interface{}) (nodes []*Node, err error) {
	if v == nil {
		return
	}

	items, ok := v.([]interface{})
	if !ok {
		err = commerr.ErrInvalidArgument

		return
	}

	nodes = make([]*Node, 0, len(items))

	for _, item := range items {
		var node *Node

		node, err = buildNode(item)
		if err != nil {
			return
		}

		nodes = append(nodes, node)
	}

	return
}

func buildNode(v interface{}) (node *Node, err error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		// bare scalar leaf
		node = &Node{
			Title: cast.ToString(v),
		}

		return
	}

	children, err := buildNodes(m["children"])
	if err != nil {
		return
	}

	node = &Node{
		Title:    cast.ToString(m["title"]),
		Children: children,
	}

	return
}

func (t *YAMLTree) NumberOfChildren(path treeindex.Path) int {
	nodes, ok := t.nodesAt(path)
	if !ok {
		return 0
	}

	return len(nodes)
}

// NodeAt returns the node named by path, or false when the path does not
// exist in the document.
func (t *YAMLTree) NodeAt(path treeindex.Path) (*Node, bool) {
	if len(path) == 0 {
		return nil, false
	}

	nodes, ok := t.nodesAt(path[:len(path)-1])
	if !ok {
		return nil, false
	}

	last := path[len(path)-1]
	if last < 0 || last >= len(nodes) {
		return nil, false
	}

	return nodes[last], true
}

func (t *YAMLTree) nodesAt(path treeindex.Path) ([]*Node, bool) {
	nodes := t.roots

	for _, pos := range path {
		if pos < 0 || pos >= len(nodes) {
			return nil, false
		}

		nodes = nodes[pos].Children
	}

	return nodes, true
}
