package ast

import (
	"glint/internal/source"
	"glint/internal/types"
)

// Each New<Kind>/<Kind> pair mirrors the teacher's exprs.go shape: New
// allocates the payload then the base node; the accessor re-checks Kind
// before indexing the payload arena so a stale ExprID after a Rewrite
// fails safely instead of reading garbage.

func (b *Builder) NewLiteral(span source.Span, data LiteralData) ExprID {
	p := b.literals.Allocate(data)
	return b.alloc(ExprLiteral, span, p)
}

func (b *Builder) Literal(id ExprID) (*LiteralData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprLiteral {
		return nil, false
	}
	return b.literals.Get(e.Payload), true
}

func (b *Builder) NewNameRef(span source.Span, name source.StringID, scope ScopeID) ExprID {
	p := b.nameRefs.Allocate(NameRefData{Name: name, Scope: scope})
	return b.alloc(ExprNameRef, span, p)
}

func (b *Builder) NameRef(id ExprID) (*NameRefData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprNameRef {
		return nil, false
	}
	return b.nameRefs.Get(e.Payload), true
}

func (b *Builder) NewMember(span source.Span, data MemberData) ExprID {
	p := b.members.Allocate(data)
	return b.alloc(ExprMember, span, p)
}

func (b *Builder) Member(id ExprID) (*MemberData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprMember {
		return nil, false
	}
	return b.members.Get(e.Payload), true
}

func (b *Builder) NewOverloadSet(span source.Span, name source.StringID, candidates []ExprID) ExprID {
	p := b.overloads.Allocate(OverloadSetData{Name: name, Candidates: candidates})
	return b.alloc(ExprOverloadSet, span, p)
}

func (b *Builder) OverloadSet(id ExprID) (*OverloadSetData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprOverloadSet {
		return nil, false
	}
	return b.overloads.Get(e.Payload), true
}

func (b *Builder) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	p := b.calls.Allocate(CallData{Callee: callee, Args: args})
	return b.alloc(ExprCall, span, p)
}

func (b *Builder) Call(id ExprID) (*CallData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprCall {
		return nil, false
	}
	return b.calls.Get(e.Payload), true
}

func (b *Builder) NewIntrinsicCall(span source.Span, kind IntrinsicKind, args []ExprID) ExprID {
	p := b.intrinsics.Allocate(IntrinsicCallData{Kind: kind, Args: args})
	return b.alloc(ExprIntrinsicCall, span, p)
}

func (b *Builder) IntrinsicCall(id ExprID) (*IntrinsicCallData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprIntrinsicCall {
		return nil, false
	}
	return b.intrinsics.Get(e.Payload), true
}

func (b *Builder) NewCast(span source.Span, kind CastKind, expr ExprID, to types.TypeID) ExprID {
	p := b.casts.Allocate(CastData{Kind: kind, Expr: expr, To: to})
	return b.alloc(ExprCast, span, p)
}

func (b *Builder) Cast(id ExprID) (*CastData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprCast {
		return nil, false
	}
	return b.casts.Get(e.Payload), true
}

func (b *Builder) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	p := b.unaries.Allocate(UnaryData{Op: op, Operand: operand})
	return b.alloc(ExprUnary, span, p)
}

func (b *Builder) Unary(id ExprID) (*UnaryData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprUnary {
		return nil, false
	}
	return b.unaries.Get(e.Payload), true
}

func (b *Builder) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	p := b.binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})
	return b.alloc(ExprBinary, span, p)
}

func (b *Builder) Binary(id ExprID) (*BinaryData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprBinary {
		return nil, false
	}
	return b.binaries.Get(e.Payload), true
}

func (b *Builder) NewBlock(span source.Span, scope ScopeID, stmts []StmtID) ExprID {
	p := b.blocks.Allocate(BlockData{Scope: scope, Stmts: stmts})
	return b.alloc(ExprBlock, span, p)
}

func (b *Builder) Block(id ExprID) (*BlockData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprBlock {
		return nil, false
	}
	return b.blocks.Get(e.Payload), true
}

func (b *Builder) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	p := b.ifs.Allocate(IfData{Cond: cond, Then: then, Else: els})
	return b.alloc(ExprIf, span, p)
}

func (b *Builder) If(id ExprID) (*IfData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprIf {
		return nil, false
	}
	return b.ifs.Get(e.Payload), true
}

func (b *Builder) NewWhile(span source.Span, cond, body ExprID) ExprID {
	p := b.whiles.Allocate(WhileData{Cond: cond, Body: body})
	return b.alloc(ExprWhile, span, p)
}

func (b *Builder) While(id ExprID) (*WhileData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprWhile {
		return nil, false
	}
	return b.whiles.Get(e.Payload), true
}

func (b *Builder) NewFor(span source.Span, init, cond, incr, body ExprID) ExprID {
	p := b.fors.Allocate(ForData{Init: init, Cond: cond, Incr: incr, Body: body})
	return b.alloc(ExprFor, span, p)
}

func (b *Builder) For(id ExprID) (*ForData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprFor {
		return nil, false
	}
	return b.fors.Get(e.Payload), true
}

func (b *Builder) NewReturn(span source.Span, value ExprID) ExprID {
	p := b.returns.Allocate(ReturnData{Value: value})
	return b.alloc(ExprReturn, span, p)
}

func (b *Builder) Return(id ExprID) (*ReturnData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprReturn {
		return nil, false
	}
	return b.returns.Get(e.Payload), true
}

func (b *Builder) NewSizeof(span source.Span, operand types.TypeID) ExprID {
	p := b.sizeAligns.Allocate(SizeAlignData{Operand: operand})
	return b.alloc(ExprSizeof, span, p)
}

func (b *Builder) NewAlignof(span source.Span, operand types.TypeID) ExprID {
	p := b.sizeAligns.Allocate(SizeAlignData{Operand: operand})
	return b.alloc(ExprAlignof, span, p)
}

func (b *Builder) SizeAlign(id ExprID) (*SizeAlignData, bool) {
	e := b.Get(id)
	if e == nil || (e.Kind != ExprSizeof && e.Kind != ExprAlignof) {
		return nil, false
	}
	return b.sizeAligns.Get(e.Payload), true
}

func (b *Builder) NewCompoundLiteral(span source.Span, ty types.TypeID, args []ExprID) ExprID {
	p := b.compLits.Allocate(CompoundLiteralData{Type: ty, Args: args})
	return b.alloc(ExprCompoundLiteral, span, p)
}

func (b *Builder) CompoundLiteral(id ExprID) (*CompoundLiteralData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprCompoundLiteral {
		return nil, false
	}
	return b.compLits.Get(e.Payload), true
}

func (b *Builder) NewEvaluatedConstant(span source.Span, data EvaluatedConstantData) ExprID {
	p := b.evalConsts.Allocate(data)
	return b.alloc(ExprEvaluatedConstant, span, p)
}

func (b *Builder) EvaluatedConstant(id ExprID) (*EvaluatedConstantData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprEvaluatedConstant {
		return nil, false
	}
	return b.evalConsts.Get(e.Payload), true
}

func (b *Builder) NewModuleRef(span source.Span, name source.StringID, scope ScopeID) ExprID {
	p := b.moduleRefs.Allocate(ModuleRefData{ModuleName: name, Scope: scope})
	return b.alloc(ExprModuleRef, span, p)
}

func (b *Builder) ModuleRef(id ExprID) (*ModuleRefData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprModuleRef {
		return nil, false
	}
	return b.moduleRefs.Get(e.Payload), true
}

func (b *Builder) NewVarDecl(span source.Span, data VarDeclData) ExprID {
	p := b.varDecls.Allocate(data)
	return b.alloc(ExprVarDecl, span, p)
}

func (b *Builder) VarDecl(id ExprID) (*VarDeclData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprVarDecl {
		return nil, false
	}
	return b.varDecls.Get(e.Payload), true
}

func (b *Builder) NewFnDecl(span source.Span, data FnDeclData) ExprID {
	if data.Dangling == nil {
		data.Dangling = make(map[ExprID]struct{})
	}
	p := b.fnDecls.Allocate(data)
	return b.alloc(ExprFnDecl, span, p)
}

func (b *Builder) FnDecl(id ExprID) (*FnDeclData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprFnDecl {
		return nil, false
	}
	return b.fnDecls.Get(e.Payload), true
}

func (b *Builder) NewTypeDecl(span source.Span, name source.StringID, ty types.TypeID) ExprID {
	p := b.typeDecls.Allocate(TypeDeclData{Name: name, Type: ty})
	return b.alloc(ExprTypeDecl, span, p)
}

func (b *Builder) TypeDecl(id ExprID) (*TypeDeclData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprTypeDecl {
		return nil, false
	}
	return b.typeDecls.Get(e.Payload), true
}

func (b *Builder) NewAliasDecl(span source.Span, name source.StringID, target types.TypeID) ExprID {
	p := b.aliasDecls.Allocate(AliasDeclData{Name: name, Target: target})
	return b.alloc(ExprAliasDecl, span, p)
}

func (b *Builder) AliasDecl(id ExprID) (*AliasDeclData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprAliasDecl {
		return nil, false
	}
	return b.aliasDecls.Get(e.Payload), true
}

func (b *Builder) NewEnumeratorDecl(span source.Span, name source.StringID, owner types.TypeID, value int64) ExprID {
	p := b.enumDecls.Allocate(EnumeratorDeclData{Name: name, Owner: owner, Value: value})
	return b.alloc(ExprEnumeratorDecl, span, p)
}

func (b *Builder) EnumeratorDecl(id ExprID) (*EnumeratorDeclData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprEnumeratorDecl {
		return nil, false
	}
	return b.enumDecls.Get(e.Payload), true
}

func (b *Builder) NewModuleDecl(span source.Span, name source.StringID, scope ScopeID) ExprID {
	p := b.moduleDecls.Allocate(ModuleDeclData{Name: name, Scope: scope})
	return b.alloc(ExprModuleDecl, span, p)
}

func (b *Builder) ModuleDecl(id ExprID) (*ModuleDeclData, bool) {
	e := b.Get(id)
	if e == nil || e.Kind != ExprModuleDecl {
		return nil, false
	}
	return b.moduleDecls.Get(e.Payload), true
}
