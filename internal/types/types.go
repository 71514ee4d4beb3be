// Package types implements the Glint type model (spec.md §3 "Types",
// §4.C). Grounded on the teacher's internal/types interner
// (_examples/vovakirdan-surge/internal/types/{types,interner,nominal,
// enum,union,fn}.go): a compact Type descriptor interned to a stable
// TypeID, with side-table "Info" structs for variants that need more than
// a few fixed fields (Struct/Sum/Union/Enum/Function), looked up by a
// Payload slot the way the teacher's StructInfo/EnumInfo/UnionInfo/FnInfo
// are.
package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TypeID uniquely identifies a type inside an Interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the variant set from spec.md §3.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindByte
	KindVoidPtr // pointer-to-void builtin
	KindOverloadSet
	KindInteger // Integer{bit_width, signed}
	KindFFI
	KindNamed // pre-resolution placeholder; identity-only equality
	KindPointer
	KindReference
	KindArray
	KindDynamicArray
	KindSum
	KindUnion
	KindStruct
	KindEnum
	KindFunction
	// KindInferPlaceholder never equals any type, per spec.md §3
	// ("Equality"): a sentinel used while a VarDecl's type is still being
	// inferred from its initialiser.
	KindInferPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindByte:
		return "byte"
	case KindVoidPtr:
		return "@void"
	case KindOverloadSet:
		return "overload-set"
	case KindInteger:
		return "integer"
	case KindFFI:
		return "ffi"
	case KindNamed:
		return "named"
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindDynamicArray:
		return "dynamic-array"
	case KindSum:
		return "sum"
	case KindUnion:
		return "union"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindFunction:
		return "function"
	case KindInferPlaceholder:
		return "<infer>"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is the compact descriptor stored per TypeID. Fields are
// interpreted per Kind; Payload indexes into the per-kind side table
// (structs/sums/unions/enums/fns) the way the teacher's Type.Payload
// does for KindStruct/KindAlias/KindEnum/KindUnion/KindFn.
type Type struct {
	Kind     Kind
	Elem     TypeID // Pointer/Reference/Array/DynamicArray element
	BitWidth uint8  // KindInteger
	Signed   bool   // KindInteger
	Mutable  bool   // KindReference (mutability is tracked but not
	// enforced by this core; spec.md doesn't define mutable references
	// for Glint, but the field costs nothing and lets a downstream pass
	// use it without a type-table migration)
	Payload uint32 // index into structs/sums/unions/enums/fns
}

type typeKey struct {
	Kind     Kind
	Elem     TypeID
	BitWidth uint8
	Signed   bool
	Mutable  bool
	Payload  uint32
}

// Builtins holds TypeIDs for the fixed primitive set.
type Builtins struct {
	Invalid     TypeID
	Void        TypeID
	Bool        TypeID
	Byte        TypeID
	VoidPtr     TypeID
	OverloadSet TypeID
	Int         TypeID // Integer{64, signed} — the default "int"
	Infer       TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors, and
// owns the side tables for nominal/compound variants.
type Interner struct {
	types []Type
	index map[typeKey]TypeID

	builtins Builtins

	structs []StructInfo
	sums    []SumInfo
	unions  []UnionInfo
	enums   []EnumInfo
	fns     []FnInfo
	named   []NamedInfo
	arrays  []ArrayInfo

	// identity-only comparands: Named and the infer placeholder never
	// structurally equal anything else (spec.md §3 "Equality"), so every
	// Intern call for them allocates a fresh TypeID instead of consulting
	// the index.
}

// NewInterner constructs an interner seeded with builtin primitives.
func NewInterner() *Interner {
	in := &Interner{index: make(map[typeKey]TypeID, 64)}
	in.structs = append(in.structs, StructInfo{})
	in.sums = append(in.sums, SumInfo{})
	in.unions = append(in.unions, UnionInfo{})
	in.enums = append(in.enums, EnumInfo{})
	in.fns = append(in.fns, FnInfo{})
	in.named = append(in.named, NamedInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Byte = in.Intern(Type{Kind: KindByte})
	in.builtins.VoidPtr = in.Intern(Type{Kind: KindVoidPtr})
	in.builtins.OverloadSet = in.Intern(Type{Kind: KindOverloadSet})
	in.builtins.Int = in.Intern(Type{Kind: KindInteger, BitWidth: 64, Signed: true})
	in.builtins.Infer = in.internRaw(Type{Kind: KindInferPlaceholder})
	return in
}

// Builtins returns the TypeIDs for the fixed primitive set.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern ensures t has a stable TypeID, deduplicating structurally equal
// descriptors except for the identity-only Kinds (spec.md §3).
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if t.Kind == KindNamed || t.Kind == KindInferPlaceholder {
		return in.internRaw(t)
	}
	key := typeKey{t.Kind, t.Elem, t.BitWidth, t.Signed, t.Mutable, t.Payload}
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRawKeyed(t, key)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	return id
}

func (in *Interner) internRawKeyed(t Type, key typeKey) TypeID {
	id := in.internRaw(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics if id is invalid; used in places spec.md's invariants
// already guarantee validity (e.g. after a successful Analyse).
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// MakePointer interns a pointer to elem. Only MakeReference collapses
// reference chains on construction; a pointer to a reference is formed
// by the caller decaying the reference to its element first.
func (in *Interner) MakePointer(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindPointer, Elem: elem})
}

// MakeReference interns a reference to elem, collapsing reference-to-
// reference on construction (spec.md §4.C: "pointer/reference collapse
// references on construction").
func (in *Interner) MakeReference(elem TypeID, mutable bool) TypeID {
	if t, ok := in.Lookup(elem); ok && t.Kind == KindReference {
		elem = t.Elem
	}
	return in.Intern(Type{Kind: KindReference, Elem: elem, Mutable: mutable})
}

// MakeInteger interns Integer{bitWidth, signed}.
func (in *Interner) MakeInteger(bitWidth uint8, signed bool) TypeID {
	return in.Intern(Type{Kind: KindInteger, BitWidth: bitWidth, Signed: signed})
}

// MakeArray interns an Array{elem} of size elements, size being the
// caller's already-folded size expression (arrays need a
// compile-time constant per spec.md §3, which sema's evaluator computes,
// not this package).
func (in *Interner) MakeArray(elem TypeID, size uint32) TypeID {
	slot := in.appendArrayInfo(ArrayInfo{Size: size})
	return in.Intern(Type{Kind: KindArray, Elem: elem, Payload: slot})
}

// ArraySize returns the element count for an Array TypeID.
func (in *Interner) ArraySize(id TypeID) (uint32, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindArray {
		return 0, false
	}
	info := in.arrayInfo(t.Payload)
	if info == nil {
		return 0, false
	}
	return info.Size, true
}

// MakeDynamicArray interns a DynamicArray{elem, initialSize}.
func (in *Interner) MakeDynamicArray(elem TypeID, initialSize uint32, hasInitialSize bool) TypeID {
	slot := in.appendArrayInfo(ArrayInfo{Size: initialSize, HasSize: hasInitialSize})
	return in.Intern(Type{Kind: KindDynamicArray, Elem: elem, Payload: slot})
}

func (in *Interner) arrayInfo(slot uint32) *ArrayInfo {
	if int(slot) == 0 || int(slot) >= len(in.arrays) {
		return nil
	}
	return &in.arrays[slot]
}

func (in *Interner) appendArrayInfo(info ArrayInfo) uint32 {
	if in.arrays == nil {
		in.arrays = append(in.arrays, ArrayInfo{})
	}
	in.arrays = append(in.arrays, info)
	slot, err := safecast.Conv[uint32](len(in.arrays) - 1)
	if err != nil {
		panic(fmt.Errorf("types: array info overflow: %w", err))
	}
	return slot
}

// ArrayInfo stores the per-array metadata not representable in the
// compact Type descriptor.
type ArrayInfo struct {
	Size    uint32
	HasSize bool // false for a DynamicArray with no initial-size expr
}
