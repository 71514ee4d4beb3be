package diagfmt

import (
	"fmt"
	"io"

	"glint/internal/ast"
	"glint/internal/source"
)

// FormatAST writes mod's declarations as a box-drawing tree, grounded
// on the teacher's FormatASTTree/FormatASTPretty (internal/diagfmt/ast.go)
// prefix/connector shape, trimmed to the node kinds this core's smaller
// grammar actually produces (no generics/contracts/tags payloads).
func FormatAST(w io.Writer, mod *ast.Module, strs *source.Interner) {
	fmt.Fprintf(w, "Module\n")
	for i, id := range mod.Decls {
		last := i == len(mod.Decls)-1
		writeNode(w, mod.Builder, strs, id, "", last)
	}
}

func writeNode(w io.Writer, b *ast.Builder, strs *source.Interner, id ast.ExprID, prefix string, last bool) {
	connector, childPrefix := "├─ ", prefix+"│  "
	if last {
		connector, childPrefix = "└─ ", prefix+"   "
	}
	if id == ast.NoExprID {
		fmt.Fprintf(w, "%s%s<none>\n", prefix, connector)
		return
	}

	expr := b.Get(id)
	label, children := describeNode(b, strs, id, expr.Kind)
	fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label)
	for i, c := range children {
		writeNode(w, b, strs, c, childPrefix, i == len(children)-1)
	}
}

func str(strs *source.Interner, id source.StringID) string {
	s, _ := strs.Lookup(id)
	return s
}

// describeNode renders one node's label and returns its child
// expressions in the order a reader would expect to see them.
func describeNode(b *ast.Builder, strs *source.Interner, id ast.ExprID, kind ast.ExprKind) (string, []ast.ExprID) {
	switch kind {
	case ast.ExprLiteral:
		lit, _ := b.Literal(id)
		return fmt.Sprintf("literal(%v)", literalValue(strs, lit)), nil
	case ast.ExprNameRef:
		nr, _ := b.NameRef(id)
		return fmt.Sprintf("name-ref(%s)", str(strs, nr.Name)), nil
	case ast.ExprMember:
		md, _ := b.Member(id)
		return fmt.Sprintf("member(.%s)", str(strs, md.MemberName)), []ast.ExprID{md.Object}
	case ast.ExprCall:
		cd, _ := b.Call(id)
		return "call", append([]ast.ExprID{cd.Callee}, cd.Args...)
	case ast.ExprCast:
		cd, _ := b.Cast(id)
		return "cast", []ast.ExprID{cd.Expr}
	case ast.ExprUnary:
		ud, _ := b.Unary(id)
		return fmt.Sprintf("unary(%s)", unaryOpName(ud.Op)), []ast.ExprID{ud.Operand}
	case ast.ExprBinary:
		bd, _ := b.Binary(id)
		return fmt.Sprintf("binary(%s)", binaryOpName(bd.Op)), []ast.ExprID{bd.Left, bd.Right}
	case ast.ExprBlock:
		blk, _ := b.Block(id)
		children := make([]ast.ExprID, len(blk.Stmts))
		for i, s := range blk.Stmts {
			children[i] = b.GetStmt(s).Expr
		}
		return "block", children
	case ast.ExprIf:
		ifd, _ := b.If(id)
		return "if", []ast.ExprID{ifd.Cond, ifd.Then, ifd.Else}
	case ast.ExprWhile:
		wd, _ := b.While(id)
		return "while", []ast.ExprID{wd.Cond, wd.Body}
	case ast.ExprFor:
		fd, _ := b.For(id)
		return "for", []ast.ExprID{fd.Init, fd.Cond, fd.Incr, fd.Body}
	case ast.ExprReturn:
		rd, _ := b.Return(id)
		if rd.Value == ast.NoExprID {
			return "return", nil
		}
		return "return", []ast.ExprID{rd.Value}
	case ast.ExprCompoundLiteral:
		cd, _ := b.CompoundLiteral(id)
		return "compound-literal", cd.Args
	case ast.ExprVarDecl:
		vd, _ := b.VarDecl(id)
		if vd.Init == ast.NoExprID {
			return fmt.Sprintf("var-decl(%s)", str(strs, vd.Name)), nil
		}
		return fmt.Sprintf("var-decl(%s)", str(strs, vd.Name)), []ast.ExprID{vd.Init}
	case ast.ExprFnDecl:
		fd, _ := b.FnDecl(id)
		if fd.Body == ast.NoExprID {
			return fmt.Sprintf("fn-decl(%s)", str(strs, fd.Name)), nil
		}
		return fmt.Sprintf("fn-decl(%s)", str(strs, fd.Name)), []ast.ExprID{fd.Body}
	case ast.ExprTypeDecl:
		td, _ := b.TypeDecl(id)
		return fmt.Sprintf("type-decl(%s)", str(strs, td.Name)), nil
	case ast.ExprAliasDecl:
		ad, _ := b.AliasDecl(id)
		return fmt.Sprintf("alias-decl(%s)", str(strs, ad.Name)), nil
	case ast.ExprEnumeratorDecl:
		ed, _ := b.EnumeratorDecl(id)
		return fmt.Sprintf("enumerator-decl(%s=%d)", str(strs, ed.Name), ed.Value), nil
	default:
		return kind.String(), nil
	}
}

func literalValue(strs *source.Interner, lit *ast.LiteralData) any {
	switch lit.Kind {
	case ast.LitInt:
		return lit.Int
	case ast.LitBool:
		return lit.Bool
	case ast.LitString:
		return str(strs, lit.Str)
	case ast.LitByte:
		return lit.Int
	default:
		return "?"
	}
}

func unaryOpName(op ast.UnaryOp) string {
	switch op {
	case ast.UnaryAddr:
		return "&"
	case ast.UnaryDeref:
		return "@"
	case ast.UnaryNegFree:
		return "-"
	case ast.UnaryBitNot:
		return "~"
	case ast.UnaryLogNot:
		return "!"
	case ast.UnaryHas:
		return "has"
	default:
		return "?"
	}
}

func binaryOpName(op ast.BinaryOp) string {
	names := map[ast.BinaryOp]string{
		ast.BinAdd: "+", ast.BinSub: "-", ast.BinMul: "*", ast.BinDiv: "/",
		ast.BinMod: "%", ast.BinEq: "==", ast.BinNe: "!=", ast.BinLt: "<",
		ast.BinLe: "<=", ast.BinGt: ">", ast.BinGe: ">=", ast.BinAnd: "&&",
		ast.BinOr: "||", ast.BinBitAnd: "&", ast.BinBitOr: "|",
		ast.BinBitXor: "^", ast.BinShl: "<<", ast.BinShr: ">>", ast.BinAssign: "=",
	}
	if n, ok := names[op]; ok {
		return n
	}
	return "?"
}
