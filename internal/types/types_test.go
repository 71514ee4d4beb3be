package types

import "testing"

func TestBuiltinsAreDistinctAndStable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	ids := []TypeID{b.Void, b.Bool, b.Byte, b.VoidPtr, b.OverloadSet, b.Int}
	seen := map[TypeID]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("builtin TypeID %d reused across distinct builtins", id)
		}
		seen[id] = true
	}
	if in.Intern(Type{Kind: KindBool}) != b.Bool {
		t.Fatalf("re-interning Bool must return the same TypeID")
	}
}

func TestIntegerInterningDedups(t *testing.T) {
	in := NewInterner()
	a := in.MakeInteger(32, true)
	b := in.MakeInteger(32, true)
	if a != b {
		t.Fatalf("two Integer{32,signed} interns should share a TypeID")
	}
	c := in.MakeInteger(32, false)
	if a == c {
		t.Fatalf("signed and unsigned Integer{32} must not share a TypeID")
	}
}

func TestNamedNeverStructurallyEquals(t *testing.T) {
	in := NewInterner()
	a := in.MakeNamed("Foo", 0)
	b := in.MakeNamed("Foo", 0)
	if a == b {
		t.Fatalf("two MakeNamed calls must allocate distinct TypeIDs")
	}
	if Equal(in, a, b) {
		t.Fatalf("Named types must never structurally equal, even with identical names")
	}
}

func TestReferenceCollapsesOnConstruction(t *testing.T) {
	in := NewInterner()
	inner := in.MakeReference(in.Builtins().Int, false)
	outer := in.MakeReference(inner, true)
	ot, ok := in.Lookup(outer)
	if !ok {
		t.Fatalf("expected valid outer reference type")
	}
	if ot.Elem != in.Builtins().Int {
		t.Fatalf("reference-to-reference must collapse to the innermost element")
	}
}

func TestStructLayoutPadsForAlignment(t *testing.T) {
	in := NewInterner()
	byteT := in.Builtins().Byte
	intT := in.MakeInteger(32, true)
	s := in.DeclareStruct("Pair")
	in.FinalizeStruct(s, []Field{
		{Name: "flag", Type: byteT},
		{Name: "value", Type: intT},
	})
	info, ok := in.StructInfoOf(s)
	if !ok {
		t.Fatalf("expected struct info")
	}
	if info.Members[0].ByteOffset != 0 {
		t.Fatalf("first member should sit at offset 0, got %d", info.Members[0].ByteOffset)
	}
	if info.Members[1].ByteOffset != 4 {
		t.Fatalf("second member should be padded to 4-byte alignment, got %d", info.Members[1].ByteOffset)
	}
	if info.ByteSize != 8 {
		t.Fatalf("expected struct size 8, got %d", info.ByteSize)
	}
	if info.Alignment != 4 {
		t.Fatalf("expected struct alignment 4, got %d", info.Alignment)
	}
}

func TestUnionLayoutOverlapsMembers(t *testing.T) {
	in := NewInterner()
	byteT := in.Builtins().Byte
	intT := in.MakeInteger(64, true)
	u := in.DeclareUnion("Slot")
	in.FinalizeUnion(u, []Field{
		{Name: "b", Type: byteT},
		{Name: "i", Type: intT},
	})
	info, _ := in.UnionInfoOf(u)
	for _, m := range info.Members {
		if m.ByteOffset != 0 {
			t.Fatalf("union members must all start at offset 0, got %d for %s", m.ByteOffset, m.Name)
		}
	}
	if info.ByteSize != 8 {
		t.Fatalf("expected union size 8 (widest member), got %d", info.ByteSize)
	}
}

func TestSumLayoutReservesTagBeforeData(t *testing.T) {
	in := NewInterner()
	intT := in.MakeInteger(64, true)
	s := in.DeclareSum("Result")
	in.FinalizeSum(s, []Field{
		{Name: "ok", Type: intT},
		{Name: "err", Type: in.Builtins().Byte},
	})
	info, _ := in.SumInfoOf(s)
	if info.Members[0].ByteOffset == 0 {
		t.Fatalf("sum payload must not overlap the tag at offset 0")
	}
	if info.ByteSize <= info.DataSize {
		t.Fatalf("sum size must include room for the tag in addition to the data")
	}
}

func TestStripPointersAndReferences(t *testing.T) {
	in := NewInterner()
	intT := in.Builtins().Int
	ptr := in.MakePointer(intT)
	ref := in.MakeReference(ptr, false)
	if got := StripPointersAndReferences(in, ref); got != intT {
		t.Fatalf("expected stripping to reach Int, got %s", String(in, got))
	}
}

func TestIsIntegerAcceptsBoolOnlyWhenAsked(t *testing.T) {
	in := NewInterner()
	if !IsInteger(in, in.Builtins().Bool, true) {
		t.Fatalf("Bool should count as integer-like when acceptBool=true")
	}
	if IsInteger(in, in.Builtins().Bool, false) {
		t.Fatalf("Bool should not count as integer-like when acceptBool=false")
	}
	if !IsInteger(in, in.MakeInteger(16, false), false) {
		t.Fatalf("Integer must always count as integer-like")
	}
}

func TestArrayStringRendering(t *testing.T) {
	in := NewInterner()
	arr := in.MakeArray(in.Builtins().Byte, 16)
	if got := String(in, arr); got != "[16]byte" {
		t.Fatalf("unexpected array rendering: %s", got)
	}
	dyn := in.MakeDynamicArray(in.Builtins().Int, 0, false)
	if got := String(in, dyn); got != "[]int64" {
		t.Fatalf("unexpected dynamic array rendering: %s", got)
	}
}
