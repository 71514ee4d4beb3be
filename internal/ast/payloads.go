package ast

import (
	"glint/internal/source"
	"glint/internal/types"
)

// LitKind distinguishes literal token shapes.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitBool
	LitString
	LitByte
)

// LiteralData backs ExprLiteral.
type LiteralData struct {
	Kind  LitKind
	Int   int64
	Bool  bool
	Str   source.StringID
	Width uint8
}

// NameRefData backs ExprNameRef. Target is filled in by successful
// resolution; Name is the surface spelling (possibly retargeted after
// auto-correct, per spec.md §4.H).
type NameRefData struct {
	Name   source.StringID
	Scope  ScopeID
	Target ExprID // resolved declaration, or NoExprID before/on failure
}

// MemberData backs ExprMember, resolved per spec.md §4.H's finalisation:
// struct/sum/union plus a member index rather than a bare name.
type MemberData struct {
	Object      ExprID
	MemberName  source.StringID
	StructType  types.TypeID // the struct/sum/union type carrying the member
	MemberIndex uint32
	ViaDeref    bool // object was a pointer/dynamic-array, implicitly dereferenced
}

// OverloadSetData backs ExprOverloadSet: the candidate function
// declarations sharing one name, per spec.md's Glossary.
type OverloadSetData struct {
	Name       source.StringID
	Candidates []ExprID // ExprFnDecl nodes
}

// CallData backs ExprCall.
type CallData struct {
	Callee ExprID
	Args   []ExprID
}

// IntrinsicKind enumerates spec.md §6's intrinsic table.
type IntrinsicKind uint8

const (
	IntrinsicDebugTrap IntrinsicKind = iota
	IntrinsicFilename
	IntrinsicLine
	IntrinsicInline
	IntrinsicMemcpy
	IntrinsicMemset
	IntrinsicSyscall
)

// IntrinsicCallData backs ExprIntrinsicCall.
type IntrinsicCallData struct {
	Kind IntrinsicKind
	Args []ExprID
}

// CastKind enumerates spec.md §3's six cast kinds.
type CastKind uint8

const (
	CastImplicit CastKind = iota
	CastLValueToRValue
	CastLValueToReference
	CastReferenceToLValue
	CastHard
	CastSoft
)

func (k CastKind) String() string {
	switch k {
	case CastImplicit:
		return "implicit"
	case CastLValueToRValue:
		return "lvalue-to-rvalue"
	case CastLValueToReference:
		return "lvalue-to-reference"
	case CastReferenceToLValue:
		return "reference-to-lvalue"
	case CastHard:
		return "hard"
	case CastSoft:
		return "soft"
	default:
		return "invalid"
	}
}

// Trusted reports whether sema itself produced this cast kind (always
// valid, never re-checked), per spec.md §4.H's Cast rule.
func (k CastKind) Trusted() bool {
	switch k {
	case CastImplicit, CastLValueToRValue, CastLValueToReference, CastReferenceToLValue:
		return true
	default:
		return false
	}
}

// CastData backs ExprCast.
type CastData struct {
	Kind CastKind
	Expr ExprID
	To   types.TypeID
}

// UnaryOp enumerates spec.md §4.H's unary operators.
type UnaryOp uint8

const (
	UnaryAddr     UnaryOp = iota // &
	UnaryDeref                   // @
	UnaryNegFree                 // - (numeric negate, or dynamic-array free)
	UnaryBitNot                  // ~
	UnaryLogNot                  // !
	UnaryHas                     // has
)

// UnaryData backs ExprUnary.
type UnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// BinaryOp enumerates spec.md §6's operator table.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinAssign
)

// BinaryData backs ExprBinary.
type BinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

// BlockData backs ExprBlock: an ordered statement list whose last
// statement's type/lvalue-ness is the block's own, per spec.md §4.H.
type BlockData struct {
	Scope ScopeID
	Stmts []StmtID
}

// IfData backs ExprIf.
type IfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID // NoExprID if absent
}

// WhileData backs ExprWhile.
type WhileData struct {
	Cond ExprID
	Body ExprID
}

// ForData backs ExprFor.
type ForData struct {
	Init ExprID // NoExprID if absent
	Cond ExprID
	Incr ExprID // NoExprID if absent
	Body ExprID
}

// ReturnData backs ExprReturn.
type ReturnData struct {
	Value ExprID // NoExprID for a bare `return;`
}

// SizeAlignData backs ExprSizeof/ExprAlignof: the operand is a type, not
// an expression, named via Named/direct TypeID.
type SizeAlignData struct {
	Operand types.TypeID
}

// CompoundLiteralData backs ExprCompoundLiteral (spec.md §4.H's Call
// rewrite when the callee names a type with more than one argument).
type CompoundLiteralData struct {
	Type types.TypeID
	Args []ExprID
}

// EvaluatedConstantData backs ExprEvaluatedConstant, the folder's output
// node (spec.md §4.F / Glossary).
type EvaluatedConstantData struct {
	IsString bool
	Int      int64
	Width    uint8
	Signed   bool
	Str      source.StringID
}

// ModuleRefData backs ExprModuleRef: a NameRef retargeted into an
// imported module's global scope (spec.md §4.H's Member-access and
// NameRef import-search rules).
type ModuleRefData struct {
	ModuleName source.StringID
	Scope      ScopeID
}

// VarDeclData backs ExprVarDecl.
type VarDeclData struct {
	Name        source.StringID
	DeclaredTy  types.TypeID // NoTypeID if inferred from Init
	Init        ExprID       // NoExprID if absent
	IsDynArray  bool
	FnScopeDecl ExprID // owning function's ExprFnDecl, for dangling-set bookkeeping
}

// FnParam describes one parameter of an ExprFnDecl.
type FnParam struct {
	Name source.StringID
	Type types.TypeID
}

// FnDeclData backs ExprFnDecl.
type FnDeclData struct {
	Name     source.StringID
	Params   []FnParam
	Return   types.TypeID
	Attrs    types.FnAttr
	Body     ExprID // NoExprID for a signature-only declaration
	FnType   types.TypeID
	Dangling map[ExprID]struct{} // VarDecl IDs of un-freed dynamic arrays
}

// TypeDeclData backs ExprTypeDecl (struct/sum/union/enum).
type TypeDeclData struct {
	Name source.StringID
	Type types.TypeID
}

// AliasDeclData backs ExprAliasDecl.
type AliasDeclData struct {
	Name   source.StringID
	Target types.TypeID
}

// EnumeratorDeclData backs ExprEnumeratorDecl.
type EnumeratorDeclData struct {
	Name  source.StringID
	Owner types.TypeID // the Enum type
	Value int64
}

// ModuleDeclData backs ExprModuleDecl: one imported module's binding.
type ModuleDeclData struct {
	Name  source.StringID
	Scope ScopeID
}
