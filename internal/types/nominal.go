package types

import "fortio.org/safecast"

// NamedInfo records the declaration site backing a KindNamed placeholder,
// grounded on the teacher's internal/types/nominal.go NamedInfo — used
// before sema resolves a type name to its underlying definition.
type NamedInfo struct {
	Name      string
	DeclScope uint32 // symbols.ScopeID, kept untyped here to avoid an
	// import cycle (types must not depend on symbols)
}

// Field describes one struct/sum/union member.
type Field struct {
	Name       string
	Type       TypeID
	ByteOffset uint32 // filled in by ComputeLayout
}

// StructInfo backs KindStruct, grounded on the teacher's StructInfo
// (internal/types/types.go): an ordered member list plus a cached byte
// layout computed once and reused by size()/align().
type StructInfo struct {
	Name       string
	Members    []Field
	ByteSize   uint32
	Alignment  uint32
	LayoutDone bool
}

// SumInfo backs KindSum: a tagged union, {tag, data} layout cached like
// the teacher's union/enum caches.
type SumInfo struct {
	Name       string
	Members    []Field
	TagWidth   uint32 // bits
	DataSize   uint32 // bytes, max over members
	DataAlign  uint32
	ByteSize   uint32
	Alignment  uint32
	LayoutDone bool
}

// UnionInfo backs KindUnion: overlapping storage, no tag, sized by the
// largest/most-aligned member.
type UnionInfo struct {
	Name       string
	Members    []Field
	ByteSize   uint32
	Alignment  uint32
	LayoutDone bool
}

// Enumerator is one named constant of an Enum.
type Enumerator struct {
	Name  string
	Value int64
}

// EnumInfo backs KindEnum: an underlying integer type plus an ordered
// enumerator list, grounded on the teacher's EnumInfo.
type EnumInfo struct {
	Name        string
	Underlying  TypeID
	Enumerators []Enumerator
}

// FnAttr mirrors spec.md §3's Function attribute set.
type FnAttr uint8

const (
	AttrPure FnAttr = 1 << iota
	AttrConst
	AttrNoReturn
	AttrNoInline
	AttrInline
	AttrDiscardable
	AttrUsed
)

// Has reports whether attrs contains a.
func (attrs FnAttr) Has(a FnAttr) bool { return attrs&a != 0 }

// FnInfo backs KindFunction, grounded on the teacher's FnInfo.
type FnInfo struct {
	Name       string
	Return     TypeID
	Params     []TypeID
	ParamNames []string
	Attrs      FnAttr
}

// appendStruct/appendSum/... mirror appendArrayInfo's overflow-checked
// append pattern for each side table.

func (in *Interner) appendStruct(info StructInfo) uint32 {
	in.structs = append(in.structs, info)
	return mustSlot(len(in.structs) - 1)
}

func (in *Interner) appendSum(info SumInfo) uint32 {
	in.sums = append(in.sums, info)
	return mustSlot(len(in.sums) - 1)
}

func (in *Interner) appendUnion(info UnionInfo) uint32 {
	in.unions = append(in.unions, info)
	return mustSlot(len(in.unions) - 1)
}

func (in *Interner) appendEnum(info EnumInfo) uint32 {
	in.enums = append(in.enums, info)
	return mustSlot(len(in.enums) - 1)
}

func (in *Interner) appendFn(info FnInfo) uint32 {
	in.fns = append(in.fns, info)
	return mustSlot(len(in.fns) - 1)
}

func (in *Interner) appendNamed(info NamedInfo) uint32 {
	in.named = append(in.named, info)
	return mustSlot(len(in.named) - 1)
}

func mustSlot(n int) uint32 {
	slot, err := safecast.Conv[uint32](n)
	if err != nil {
		panic("types: side table overflow")
	}
	return slot
}

// MakeNamed interns a fresh identity-only placeholder type for a not-yet-
// resolved type name (spec.md §3: Named never structurally equals
// anything, including another Named with the same name).
func (in *Interner) MakeNamed(name string, declScope uint32) TypeID {
	slot := in.appendNamed(NamedInfo{Name: name, DeclScope: declScope})
	return in.Intern(Type{Kind: KindNamed, Payload: slot})
}

// NamedInfoOf returns the NamedInfo for a KindNamed TypeID.
func (in *Interner) NamedInfoOf(id TypeID) (NamedInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindNamed || int(t.Payload) >= len(in.named) {
		return NamedInfo{}, false
	}
	return in.named[t.Payload], true
}

// DeclareStruct interns a new Struct type. Members/layout are finalized
// later via FinalizeStruct once all member types are known, mirroring the
// way sema resolves struct bodies only after every member type-decl has
// been seen (original_source's deferred struct finalisation).
func (in *Interner) DeclareStruct(name string) TypeID {
	slot := in.appendStruct(StructInfo{Name: name})
	return in.Intern(Type{Kind: KindStruct, Payload: slot})
}

// StructInfoOf returns the StructInfo for a KindStruct TypeID.
func (in *Interner) StructInfoOf(id TypeID) (*StructInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindStruct || int(t.Payload) >= len(in.structs) {
		return nil, false
	}
	return &in.structs[t.Payload], true
}

// FinalizeStruct fills in Members and computes byte layout for a
// previously declared struct.
func (in *Interner) FinalizeStruct(id TypeID, members []Field) {
	info, ok := in.StructInfoOf(id)
	if !ok {
		return
	}
	info.Members = members
	ComputeStructLayout(in, info)
	info.LayoutDone = true
}

// DeclareSum interns a new Sum type, deferred-finalized like structs.
func (in *Interner) DeclareSum(name string) TypeID {
	slot := in.appendSum(SumInfo{Name: name})
	return in.Intern(Type{Kind: KindSum, Payload: slot})
}

// SumInfoOf returns the SumInfo for a KindSum TypeID.
func (in *Interner) SumInfoOf(id TypeID) (*SumInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindSum || int(t.Payload) >= len(in.sums) {
		return nil, false
	}
	return &in.sums[t.Payload], true
}

// FinalizeSum fills in Members and computes the {tag,data} layout.
func (in *Interner) FinalizeSum(id TypeID, members []Field) {
	info, ok := in.SumInfoOf(id)
	if !ok {
		return
	}
	info.Members = members
	ComputeSumLayout(in, info)
	info.LayoutDone = true
}

// DeclareUnion interns a new Union type, deferred-finalized like structs.
func (in *Interner) DeclareUnion(name string) TypeID {
	slot := in.appendUnion(UnionInfo{Name: name})
	return in.Intern(Type{Kind: KindUnion, Payload: slot})
}

// UnionInfoOf returns the UnionInfo for a KindUnion TypeID.
func (in *Interner) UnionInfoOf(id TypeID) (*UnionInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindUnion || int(t.Payload) >= len(in.unions) {
		return nil, false
	}
	return &in.unions[t.Payload], true
}

// FinalizeUnion fills in Members and computes the overlapping layout.
func (in *Interner) FinalizeUnion(id TypeID, members []Field) {
	info, ok := in.UnionInfoOf(id)
	if !ok {
		return
	}
	info.Members = members
	ComputeUnionLayout(in, info)
	info.LayoutDone = true
}

// MakeEnum interns an Enum{underlying, enumerators}. Enums don't need
// deferred finalisation: the underlying type and enumerator values are
// known by the time the enum's type-decl body finishes parsing.
func (in *Interner) MakeEnum(name string, underlying TypeID, enumerators []Enumerator) TypeID {
	slot := in.appendEnum(EnumInfo{Name: name, Underlying: underlying, Enumerators: enumerators})
	return in.Intern(Type{Kind: KindEnum, Elem: underlying, Payload: slot})
}

// EnumInfoOf returns the EnumInfo for a KindEnum TypeID.
func (in *Interner) EnumInfoOf(id TypeID) (*EnumInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEnum || int(t.Payload) >= len(in.enums) {
		return nil, false
	}
	return &in.enums[t.Payload], true
}

// MakeFunction interns a Function{return, params, attrs} type.
func (in *Interner) MakeFunction(name string, ret TypeID, params []TypeID, paramNames []string, attrs FnAttr) TypeID {
	slot := in.appendFn(FnInfo{Name: name, Return: ret, Params: params, ParamNames: paramNames, Attrs: attrs})
	return in.Intern(Type{Kind: KindFunction, Elem: ret, Payload: slot})
}

// FnInfoOf returns the FnInfo for a KindFunction TypeID.
func (in *Interner) FnInfoOf(id TypeID) (*FnInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunction || int(t.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[t.Payload], true
}
