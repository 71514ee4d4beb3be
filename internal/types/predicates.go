package types

// Predicate helpers mirror spec.md §3's "Queries" (is_integer, is_pointer,
// is_function, is_void, is_dynamic_array, is_enum, is_bool) and are used
// pervasively by sema's expression dispatch.

// IsInteger reports whether id is an Integer or a Byte, or (if acceptBool) a Bool,
// matching the original compiler's "integer-like" notion used when
// deciding whether an expression can feed arithmetic (original_source's
// is_integer(accept_bool) parameter).
func IsInteger(in *Interner, id TypeID, acceptBool bool) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	if t.Kind == KindInteger || t.Kind == KindByte {
		return true
	}
	return acceptBool && t.Kind == KindBool
}

// IsBool reports whether id is exactly Bool.
func IsBool(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindBool
}

// IsPointer reports whether id is a Pointer or the VoidPtr builtin.
func IsPointer(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && (t.Kind == KindPointer || t.Kind == KindVoidPtr)
}

// IsReference reports whether id is a Reference.
func IsReference(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindReference
}

// IsFunction reports whether id is a Function.
func IsFunction(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindFunction
}

// IsVoid reports whether id is Void.
func IsVoid(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindVoid
}

// IsDynamicArray reports whether id is a DynamicArray.
func IsDynamicArray(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindDynamicArray
}

// IsArray reports whether id is a fixed-size Array.
func IsArray(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindArray
}

// IsEnum reports whether id is an Enum.
func IsEnum(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindEnum
}

// IsStructLike reports whether id is a Struct, Sum, or Union — the
// variants that support member access by name.
func IsStructLike(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindStruct, KindSum, KindUnion:
		return true
	}
	return false
}

// IsOverloadSet reports whether id is the OverloadSet marker.
func IsOverloadSet(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindOverloadSet
}

// IsInferPlaceholder reports whether id is the still-inferring sentinel.
func IsInferPlaceholder(in *Interner, id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindInferPlaceholder
}

// StripPointersAndReferences follows Pointer/Reference Elem chains down
// to the first non-pointer, non-reference type, per spec.md §3's
// strip_pointers_and_references().
func StripPointersAndReferences(in *Interner, id TypeID) TypeID {
	for {
		t, ok := in.Lookup(id)
		if !ok {
			return id
		}
		if t.Kind != KindPointer && t.Kind != KindReference {
			return id
		}
		id = t.Elem
	}
}

// Equal reports structural equality between a and b, per spec.md §3's
// "Equality" rules: Named and the infer placeholder only equal
// themselves by TypeID identity (never structurally), every other Kind
// compares its fields (including recursively through Elem and, for
// nominal aggregates, Payload identity since each declaration is
// distinct).
func Equal(in *Interner, a, b TypeID) bool {
	if a == b {
		return true
	}
	ta, ok1 := in.Lookup(a)
	tb, ok2 := in.Lookup(b)
	if !ok1 || !ok2 || ta.Kind != tb.Kind {
		return false
	}
	switch ta.Kind {
	case KindNamed, KindInferPlaceholder, KindStruct, KindSum, KindUnion, KindEnum, KindFunction:
		// identity-only: distinct declarations are distinct types even if
		// structurally identical, matching the original compiler's nominal
		// typing for user-defined aggregates.
		return false
	case KindInteger:
		return ta.BitWidth == tb.BitWidth && ta.Signed == tb.Signed
	case KindPointer:
		return Equal(in, ta.Elem, tb.Elem)
	case KindArray:
		sa, _ := in.ArraySize(a)
		sb, _ := in.ArraySize(b)
		return sa == sb && Equal(in, ta.Elem, tb.Elem)
	case KindDynamicArray:
		return Equal(in, ta.Elem, tb.Elem)
	case KindReference:
		return ta.Mutable == tb.Mutable && Equal(in, ta.Elem, tb.Elem)
	default:
		return true // parameterless primitives: Void/Bool/Byte/VoidPtr/OverloadSet/FFI
	}
}
