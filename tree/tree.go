package tree

import (
	"fmt"
	"io"
)

// Code adapted from https://github.com/Tufin/asciitree:
// - Add takes the path as a []string (one element per level).
// - User-passed functions are called depending on whether a node is
//   absent or present in the tree, so callers can count or annotate.
// Used to render prefix containment hierarchies.

// Tree is a recursive map from a level label to its subtree.
type Tree map[string]Tree

/**
 * Adds a path to the tree. For each element of the path, if_absent
 * or if_present is called with the element and 'arg', depending on
 * whether the element was already present at that level.
 */
func (tree Tree) Add(path []string, if_absent, if_present func (string, interface{}), arg interface{}) {
	if len(path) == 0 {
		return
	}

	nextTree, ok := tree[path[0]]
	if !ok {
		nextTree = Tree{}
		tree[path[0]] = nextTree
		if_absent (path[0], arg)
	} else {
		if_present (path[0], arg)
	}
	nextTree.Add(path[1:], if_absent, if_present, arg)
}

func (tree Tree) Fprint(w io.Writer, root bool, padding string) {
	if tree == nil {
		return
	}

	index := 0
	for k, v := range tree {
		fmt.Fprintf(w, "%s%s\n", padding+getPadding(root, getBoxType(index, len(tree))), k)
		v.Fprint(w, false, padding+getPadding(root, getBoxTypeExternal(index, len(tree))))
		index++
	}
}

type BoxType int

const (
	Regular BoxType = iota
	Last
	AfterLast
	Between
)

func (boxType BoxType) String() string {
	switch boxType {
	case Regular:
		return "├" // ├
	case Last:
		return "└" // └
	case AfterLast:
		return " "
	case Between:
		return "│" // │
	default:
		panic("invalid box type")
	}
}

func getBoxType(index int, len int) BoxType {
	if index+1 == len {
		return Last
	} else if index+1 > len {
		return AfterLast
	}
	return Regular
}

func getBoxTypeExternal(index int, len int) BoxType {
	if index+1 == len {
		return AfterLast
	}
	return Between
}

func getPadding(root bool, boxType BoxType) string {
	if root {
		return ""
	}

	return boxType.String() + " "
}
