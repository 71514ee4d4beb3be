package sema

import (
	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/types"
)

// analyseMember implements spec.md §4.H's member-access finalisation:
// module rewrite, enum-constant rewrite, union hard-cast rewrite, sum
// finalisation (keeping the sum as the member's type), or struct
// finalisation with a resolved member index.
func (c *Checker) analyseMember(exprPtr *ast.ExprID) bool {
	data, _ := c.b.Member(*exprPtr)
	if !c.Analyse(&data.Object, types.NoTypeID) {
		return false
	}
	obj := c.b.Get(data.Object)

	if ref, ok := c.b.NameRef(data.Object); ok {
		if decl := c.b.Get(ref.Target); decl != nil && decl.Kind == ast.ExprModuleDecl {
			return c.rewriteToModuleMember(exprPtr, ref.Target, data.MemberName)
		}
		if decl, ok3 := c.b.TypeDecl(ref.Target); ok3 && types.IsEnum(c.in, decl.Type) {
			return c.rewriteToEnumConstant(exprPtr, decl.Type, data.MemberName)
		}
	}

	stripped := types.StripPointersAndReferences(c.in, obj.Type)
	viaDeref := stripped != obj.Type

	if ut, ok := c.in.Lookup(stripped); ok && ut.Kind == types.KindUnion {
		return c.rewriteToUnionCast(exprPtr, data, stripped)
	}
	if st, ok := c.in.Lookup(stripped); ok && st.Kind == types.KindSum {
		return c.finaliseSumMember(exprPtr, data, stripped, viaDeref, obj.LValue)
	}
	if dt, ok := c.in.Lookup(stripped); ok && dt.Kind == types.KindDynamicArray {
		stripped = c.dynamicArrayStructType(stripped)
		viaDeref = true
	}
	return c.finaliseStructMember(exprPtr, data, stripped, viaDeref, obj.LValue)
}

func (c *Checker) lookupString(id source.StringID) string {
	if c.strings == nil {
		return ""
	}
	s, _ := c.strings.Lookup(id)
	return s
}

// rewriteToModuleMember implements spec.md §4.H: "If the object is a
// name reference to a module, rewrite to a name reference inside that
// module's global scope."
func (c *Checker) rewriteToModuleMember(exprPtr *ast.ExprID, moduleDecl ast.ExprID, memberName source.StringID) bool {
	md, ok := c.b.ModuleDecl(moduleDecl)
	if !ok {
		return false
	}
	span := c.spanOf(*exprPtr)
	id := c.b.NewNameRef(span, memberName, md.Scope)
	*exprPtr = id
	return c.Analyse(exprPtr, types.NoTypeID)
}

// rewriteToEnumConstant implements spec.md §4.H: "look up the
// enumerator, rewrite to its evaluated constant."
func (c *Checker) rewriteToEnumConstant(exprPtr *ast.ExprID, enumType types.TypeID, memberName source.StringID) bool {
	info, ok := c.in.EnumInfoOf(enumType)
	if !ok {
		return false
	}
	name := c.lookupString(memberName)
	for _, en := range info.Enumerators {
		if en.Name == name {
			width := uint8(types.Size(c.in, info.Underlying))
			signed := false
			if ut, ok := c.in.Lookup(info.Underlying); ok {
				signed = ut.Signed
			}
			id := c.b.NewEvaluatedConstant(c.spanOf(*exprPtr), ast.EvaluatedConstantData{
				Int: en.Value, Width: width, Signed: signed,
			})
			*exprPtr = id
			e := c.b.Get(id)
			e.Type = enumType
			e.State = ast.Done
			return true
		}
	}
	c.reportf(c.spanOf(*exprPtr), diag.TypeMemberNotFound, "enum has no member named %q", name)
	return false
}

func (c *Checker) rewriteToUnionCast(exprPtr *ast.ExprID, data *ast.MemberData, unionType types.TypeID) bool {
	info, ok := c.in.UnionInfoOf(unionType)
	if !ok {
		return false
	}
	name := c.lookupString(data.MemberName)
	for _, m := range info.Members {
		if m.Name == name {
			c.b.WrapWithCast(&data.Object, m.Type, ast.CastHard)
			*exprPtr = data.Object
			if e := c.b.Get(*exprPtr); e != nil {
				e.Type = m.Type
				e.State = ast.Done
			}
			return true
		}
	}
	c.reportf(c.spanOf(*exprPtr), diag.TypeMemberNotFound, "union has no member named %q", name)
	return false
}

// finaliseSumMember keeps the sum type as the member-access node's own
// type (spec.md §8 scenario 6: "the member-access node's final type is
// the sum type, not the member's"), recording the resolved member index
// for IR generation's tag check.
func (c *Checker) finaliseSumMember(exprPtr *ast.ExprID, data *ast.MemberData, sumType types.TypeID, viaDeref, objLValue bool) bool {
	info, ok := c.in.SumInfoOf(sumType)
	if !ok {
		return false
	}
	name := c.lookupString(data.MemberName)
	idx := -1
	for i, m := range info.Members {
		if m.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.reportf(c.spanOf(*exprPtr), diag.TypeMemberNotFound, "sum type has no member named %q", name)
		return false
	}
	data.StructType = sumType
	data.MemberIndex = uint32(idx)
	data.ViaDeref = viaDeref
	e := c.b.Get(*exprPtr)
	e.Type = sumType
	e.LValue = objLValue
	return true
}

func (c *Checker) finaliseStructMember(exprPtr *ast.ExprID, data *ast.MemberData, structType types.TypeID, viaDeref, objLValue bool) bool {
	info, ok := c.in.StructInfoOf(structType)
	if !ok {
		c.reportf(c.spanOf(*exprPtr), diag.TypeNotStructLike, "type has no members")
		return false
	}
	name := c.lookupString(data.MemberName)
	idx := -1
	for i, m := range info.Members {
		if m.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.reportf(c.spanOf(*exprPtr), diag.TypeMemberNotFound, "struct %q has no member named %q", info.Name, name)
		return false
	}
	data.StructType = structType
	data.MemberIndex = uint32(idx)
	data.ViaDeref = viaDeref
	e := c.b.Get(*exprPtr)
	e.Type = info.Members[idx].Type
	// "lvalue-ness = object lvalue-ness after implicit dereference"
	// (spec.md §4.H): dereferencing a pointer always yields an lvalue.
	e.LValue = objLValue || viaDeref
	return true
}

// dynamicArrayStructType returns the cached struct layout backing a
// dynamic array's runtime representation, per spec.md §4.C's
// "DynamicArray::struct_type(mod) lazily build and cache". This core
// models that cache as a struct declared once per dynamic-array type rather
// than re-deriving it on every member access.
func (c *Checker) dynamicArrayStructType(dynType types.TypeID) types.TypeID {
	if c.dynStructCache == nil {
		c.dynStructCache = make(map[types.TypeID]types.TypeID)
	}
	if id, ok := c.dynStructCache[dynType]; ok {
		return id
	}
	elem := c.in.Builtins().Byte
	if t, ok := c.in.Lookup(dynType); ok {
		elem = t.Elem
	}
	st := c.in.DeclareStruct("dynamic-array")
	c.in.FinalizeStruct(st, []types.Field{
		{Name: "data", Type: c.in.MakePointer(elem)},
		{Name: "length", Type: c.in.Builtins().Int},
		{Name: "capacity", Type: c.in.Builtins().Int},
	})
	c.dynStructCache[dynType] = st
	return st
}
