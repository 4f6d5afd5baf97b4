// Package astprint renders an ast.Tree as an indented outline, the way
// the teacher's diagfmt package renders its own AST for `surge parse
// --format pretty`. spec.md treats the parser's AST as a read-only input
// the lowerer never prints, but spec §6's CLI surface requires a debug
// build to show it, so this is the minimal printer that makes that
// possible.
package astprint

import (
	"fmt"
	"io"
	"strings"

	"vslower/internal/ast"
)

// Print writes tree to w as one indented line per node.
func Print(w io.Writer, tree *ast.Tree) {
	printNode(w, tree, tree.Root, 0)
}

func printNode(w io.Writer, tree *ast.Tree, id ast.NodeID, depth int) {
	n := tree.Get(id)
	if n == nil {
		fmt.Fprintf(w, "%s<nil>\n", strings.Repeat("  ", depth))
		return
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(n))
	for _, cid := range n.Children {
		printNode(w, tree, cid, depth+1)
	}
}

func describe(n *ast.Node) string {
	label := kindName(n.Kind)
	if n.Name != "" {
		label += " " + n.Name
	}
	switch n.Payload {
	case ast.PayloadSymbol:
		label += fmt.Sprintf(" (sym=%d)", n.Sym)
	case ast.PayloadInt:
		label += fmt.Sprintf(" (%d)", n.IntVal)
	case ast.PayloadFloat:
		label += fmt.Sprintf(" (%g)", n.FloatVal)
	case ast.PayloadString:
		label += fmt.Sprintf(" (%q)", n.StringVal)
	case ast.PayloadDataType:
		label += fmt.Sprintf(" (%s)", n.DataTypeVal)
	}
	return fmt.Sprintf("%s [line %d]", label, n.Line)
}

var kindNames = map[ast.Kind]string{
	ast.KindRoot: "Root", ast.KindTypeTag: "TypeTag", ast.KindList: "List",
	ast.KindVarDef: "VarDef", ast.KindConstVarDef: "ConstVarDef",
	ast.KindArrayDef: "ArrayDef", ast.KindConstArrayDef: "ConstArrayDef",
	ast.KindFuncDef: "FuncDef", ast.KindParam: "Param",
	ast.KindBlock: "Block", ast.KindAssign: "Assign", ast.KindIf: "If",
	ast.KindWhile: "While", ast.KindReturn: "Return", ast.KindBreak: "Break",
	ast.KindContinue: "Continue", ast.KindExprStmt: "ExprStmt",
	ast.KindLiteral: "Literal", ast.KindVarRef: "VarRef",
	ast.KindArrayRef: "ArrayRef", ast.KindElemAccess: "ElemAccess",
	ast.KindCall: "Call", ast.KindUnaryOp: "UnaryOp", ast.KindBinaryOp: "BinaryOp",
	ast.KindInitList: "InitList",
}

func kindName(k ast.Kind) string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}
