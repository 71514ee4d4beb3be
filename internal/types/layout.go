package types

// Layout computation mirrors spec.md §3's "Layout" rules: struct members
// are laid out in declaration order with natural alignment padding; sum
// types store a tag plus the widest/most-aligned member's storage; unions
// overlap all members at offset 0. Grounded on the shape of the
// teacher's struct/union/enum Info caches (internal/types/types.go),
// which is the origin of the "compute once, cache on the side table"
// approach used here.

// Size returns id's size in bits, per spec.md's size(ctx) operation.
func Size(in *Interner, id TypeID) uint32 {
	t, ok := in.Lookup(id)
	if !ok {
		return 0
	}
	switch t.Kind {
	case KindVoid:
		return 0
	case KindBool, KindByte:
		return 8
	case KindVoidPtr, KindPointer, KindReference:
		return 64
	case KindInteger:
		return uint32(t.BitWidth)
	case KindArray:
		n, _ := in.ArraySize(id)
		return Size(in, t.Elem) * n
	case KindDynamicArray:
		// {data ptr, length, capacity}: three 64-bit words, per spec.md
		// §3's dynamic-array runtime representation.
		return 64 * 3
	case KindStruct:
		if info, ok := in.StructInfoOf(id); ok {
			return info.ByteSize * 8
		}
	case KindSum:
		if info, ok := in.SumInfoOf(id); ok {
			return info.ByteSize * 8
		}
	case KindUnion:
		if info, ok := in.UnionInfoOf(id); ok {
			return info.ByteSize * 8
		}
	case KindEnum:
		if info, ok := in.EnumInfoOf(id); ok {
			return Size(in, info.Underlying)
		}
	case KindFunction:
		return 64 // function pointer / code address width
	}
	return 0
}

// Align returns id's required alignment in bits.
func Align(in *Interner, id TypeID) uint32 {
	t, ok := in.Lookup(id)
	if !ok {
		return 8
	}
	switch t.Kind {
	case KindArray, KindDynamicArray:
		return 64
	case KindStruct:
		if info, ok := in.StructInfoOf(id); ok {
			return info.Alignment * 8
		}
	case KindSum:
		if info, ok := in.SumInfoOf(id); ok {
			return info.Alignment * 8
		}
	case KindUnion:
		if info, ok := in.UnionInfoOf(id); ok {
			return info.Alignment * 8
		}
	case KindEnum:
		if info, ok := in.EnumInfoOf(id); ok {
			return Align(in, info.Underlying)
		}
	}
	sz := Size(in, id)
	if sz == 0 {
		return 8
	}
	return sz
}

func byteSize(in *Interner, id TypeID) uint32 { return (Size(in, id) + 7) / 8 }

func byteAlign(in *Interner, id TypeID) uint32 {
	a := (Align(in, id) + 7) / 8
	if a == 0 {
		return 1
	}
	return a
}

func alignUp(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	rem := offset % align
	if rem == 0 {
		return offset
	}
	return offset + (align - rem)
}

// ComputeStructLayout assigns ByteOffset to each member in declaration
// order, padding for alignment, and sets the struct's overall size and
// alignment (the max member alignment, size rounded up to it).
func ComputeStructLayout(in *Interner, info *StructInfo) {
	var offset, maxAlign uint32 = 0, 1
	for i := range info.Members {
		m := &info.Members[i]
		a := byteAlign(in, m.Type)
		if a > maxAlign {
			maxAlign = a
		}
		offset = alignUp(offset, a)
		m.ByteOffset = offset
		offset += byteSize(in, m.Type)
	}
	info.ByteSize = alignUp(offset, maxAlign)
	info.Alignment = maxAlign
}

// ComputeSumLayout lays out a tagged union: a tag field (always 32 bits,
// whatever the member count) followed by a data region sized/aligned
// to the widest/most-aligned member.
func ComputeSumLayout(in *Interner, info *SumInfo) {
	var dataSize, dataAlign uint32 = 0, 1
	for i := range info.Members {
		m := &info.Members[i]
		if s := byteSize(in, m.Type); s > dataSize {
			dataSize = s
		}
		if a := byteAlign(in, m.Type); a > dataAlign {
			dataAlign = a
		}
		m.ByteOffset = 0 // all sum payloads start right after the tag
	}
	info.TagWidth = 32
	tagBytes := uint32(4)
	info.DataSize = dataSize
	info.DataAlign = dataAlign
	maxAlign := dataAlign
	if maxAlign < 4 {
		maxAlign = 4
	}
	dataOffset := alignUp(tagBytes, dataAlign)
	for i := range info.Members {
		info.Members[i].ByteOffset = dataOffset
	}
	info.ByteSize = alignUp(dataOffset+dataSize, maxAlign)
	info.Alignment = maxAlign
}

// ComputeUnionLayout overlaps every member at offset 0, sized/aligned to
// the widest/most-aligned member.
func ComputeUnionLayout(in *Interner, info *UnionInfo) {
	var size, align uint32 = 0, 1
	for i := range info.Members {
		m := &info.Members[i]
		m.ByteOffset = 0
		if s := byteSize(in, m.Type); s > size {
			size = s
		}
		if a := byteAlign(in, m.Type); a > align {
			align = a
		}
	}
	info.ByteSize = alignUp(size, align)
	info.Alignment = align
}
