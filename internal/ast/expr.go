package ast

import (
	"glint/internal/source"
	"glint/internal/types"
)

// ExprKind enumerates spec.md §3's expression variant set. Declarations
// are counted among expression kinds there, so VarDecl/FnDecl/TypeDecl/
// AliasDecl/EnumeratorDecl/ModuleDecl live in this same closed set rather
// than a separate arena, matching the spec's wording exactly.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprLiteral
	ExprNameRef
	ExprMember
	ExprOverloadSet
	ExprCall
	ExprIntrinsicCall
	ExprCast
	ExprUnary
	ExprBinary
	ExprBlock
	ExprIf
	ExprWhile
	ExprFor
	ExprReturn
	ExprSizeof
	ExprAlignof
	ExprCompoundLiteral
	ExprEvaluatedConstant
	ExprModuleRef
	ExprVarDecl
	ExprFnDecl
	ExprTypeDecl
	ExprAliasDecl
	ExprEnumeratorDecl
	ExprModuleDecl
)

func (k ExprKind) String() string {
	names := [...]string{
		"invalid", "literal", "name-ref", "member", "overload-set", "call",
		"intrinsic-call", "cast", "unary", "binary", "block", "if", "while",
		"for", "return", "sizeof", "alignof", "compound-literal",
		"evaluated-constant", "module-ref", "var-decl", "fn-decl",
		"type-decl", "alias-decl", "enumerator-decl", "module-decl",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Expr is the base node every payload arena hangs off of via Payload.
// It carries the state and location spec.md §3 requires on every node.
type Expr struct {
	Kind     ExprKind
	State    SemaState
	Span     source.Span
	Type     types.TypeID // NoTypeID until typed by analysis
	LValue   bool
	Payload  uint32
	InitFrom ExprID // non-zero while InProgress: the declaration this
	// subexpression's own initialiser is analysing, used to detect "use
	// in own initialiser" (spec.md §4.H)
}

// Stmt wraps one expression occupying a statement position inside a
// block, matching spec.md §4.D's "module owns three arenas: expressions,
// statements, scopes" — every construct in Glint is ultimately an
// expression, so Stmt is a thin positional wrapper rather than a
// separate variant set.
type Stmt struct {
	Expr ExprID
	Span source.Span
}

// Builder owns the base arenas shared by every expression kind plus the
// per-kind payload arenas declared in payloads.go, grounded on the
// teacher's Exprs/Builder split (internal/ast/exprs.go, builder.go).
type Builder struct {
	Exprs *Arena[Expr]
	Stmts *Arena[Stmt]

	literals    *Arena[LiteralData]
	nameRefs    *Arena[NameRefData]
	members     *Arena[MemberData]
	overloads   *Arena[OverloadSetData]
	calls       *Arena[CallData]
	intrinsics  *Arena[IntrinsicCallData]
	casts       *Arena[CastData]
	unaries     *Arena[UnaryData]
	binaries    *Arena[BinaryData]
	blocks      *Arena[BlockData]
	ifs         *Arena[IfData]
	whiles      *Arena[WhileData]
	fors        *Arena[ForData]
	returns     *Arena[ReturnData]
	sizeAligns  *Arena[SizeAlignData]
	compLits    *Arena[CompoundLiteralData]
	evalConsts  *Arena[EvaluatedConstantData]
	moduleRefs  *Arena[ModuleRefData]
	varDecls    *Arena[VarDeclData]
	fnDecls     *Arena[FnDeclData]
	typeDecls   *Arena[TypeDeclData]
	aliasDecls  *Arena[AliasDeclData]
	enumDecls   *Arena[EnumeratorDeclData]
	moduleDecls *Arena[ModuleDeclData]
}

// NewBuilder allocates a Builder with capHint as the initial per-arena
// capacity hint (0 selects the teacher's default of 1<<8).
func NewBuilder(capHint uint) *Builder {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Builder{
		Exprs:       NewArena[Expr](capHint),
		Stmts:       NewArena[Stmt](capHint),
		literals:    NewArena[LiteralData](capHint),
		nameRefs:    NewArena[NameRefData](capHint),
		members:     NewArena[MemberData](capHint),
		overloads:   NewArena[OverloadSetData](capHint / 8),
		calls:       NewArena[CallData](capHint),
		intrinsics:  NewArena[IntrinsicCallData](capHint / 8),
		casts:       NewArena[CastData](capHint),
		unaries:     NewArena[UnaryData](capHint),
		binaries:    NewArena[BinaryData](capHint),
		blocks:      NewArena[BlockData](capHint / 4),
		ifs:         NewArena[IfData](capHint / 4),
		whiles:      NewArena[WhileData](capHint / 8),
		fors:        NewArena[ForData](capHint / 8),
		returns:     NewArena[ReturnData](capHint / 4),
		sizeAligns:  NewArena[SizeAlignData](capHint / 8),
		compLits:    NewArena[CompoundLiteralData](capHint / 8),
		evalConsts:  NewArena[EvaluatedConstantData](capHint),
		moduleRefs:  NewArena[ModuleRefData](capHint / 8),
		varDecls:    NewArena[VarDeclData](capHint),
		fnDecls:     NewArena[FnDeclData](capHint / 4),
		typeDecls:   NewArena[TypeDeclData](capHint / 8),
		aliasDecls:  NewArena[AliasDeclData](capHint / 8),
		enumDecls:   NewArena[EnumeratorDeclData](capHint / 8),
		moduleDecls: NewArena[ModuleDeclData](capHint / 8),
	}
}

// Get returns the base node for id.
func (b *Builder) Get(id ExprID) *Expr { return b.Exprs.Get(uint32(id)) }

func (b *Builder) alloc(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(b.Exprs.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// GetStmt returns the statement wrapper for id.
func (b *Builder) GetStmt(id StmtID) *Stmt { return b.Stmts.Get(uint32(id)) }

// NewStmt wraps expr in a statement slot.
func (b *Builder) NewStmt(span source.Span, expr ExprID) StmtID {
	return StmtID(b.Stmts.Allocate(Stmt{Expr: expr, Span: span}))
}

// Rewrite overwrites the node at id in place with a freshly built
// replacement, per spec.md §4.D: "the old node is left in place (not
// freed)". Used by sema to turn e.g. a Call into an IntrinsicCall.
func (b *Builder) Rewrite(id ExprID, replacement Expr) {
	*b.Exprs.Get(uint32(id)) = replacement
}

// WrapWithCast builds a CastExpr wrapping *exprPtr, stores it back
// through exprPtr, and returns the new node's ID — grounded on spec.md
// §4.D's WrapWithCast helper. Analysis of the new node is the caller's
// responsibility (sema re-dispatches after rewriting).
func (b *Builder) WrapWithCast(exprPtr *ExprID, to types.TypeID, kind CastKind) ExprID {
	inner := *exprPtr
	span := source.Span{}
	if e := b.Get(inner); e != nil {
		span = e.Span
	}
	id := b.NewCast(span, kind, inner, to)
	*exprPtr = id
	return id
}
