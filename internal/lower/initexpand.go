package lower

import "vslower/internal/ast"

// initSlot is one explicitly-written flat element of an expanded array
// initializer: flat index plus the expression node providing its value.
type initSlot struct {
	idx  int
	node ast.NodeID
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// flattenInit implements spec §4.10's alignment rule: nested sub-lists
// align up to the next sub-array boundary before expanding, and the
// cursor always advances a full sub-array width after one is processed
// regardless of how many scalars the sub-list actually wrote (the rest
// default to zero).
func flattenInit(tree *ast.Tree, initID ast.NodeID, shape []int) []initSlot {
	var out []initSlot
	pos := 0
	n := tree.Get(initID)
	if n != nil && n.Kind != ast.KindInitList {
		return []initSlot{{idx: 0, node: initID}}
	}
	walkInitList(tree, n, 0, shape, &pos, &out)
	return out
}

func walkInitList(tree *ast.Tree, n *ast.Node, dim int, shape []int, pos *int, out *[]initSlot) {
	subSize := 1
	if dim+1 < len(shape) {
		subSize = product(shape[dim+1:])
	}
	for _, cid := range n.Children {
		child := tree.Get(cid)
		if child != nil && child.Kind == ast.KindInitList {
			if subSize > 0 && *pos%subSize != 0 {
				*pos = (*pos/subSize + 1) * subSize
			}
			before := *pos
			walkInitList(tree, child, dim+1, shape, pos, out)
			*pos = before + subSize
			continue
		}
		*out = append(*out, initSlot{idx: *pos, node: cid})
		*pos++
	}
}
