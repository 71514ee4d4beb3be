package types

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders id for diagnostics, loosely matching the original
// compiler's type-printer conventions (int64/uint32, @T for pointer, &T
// for reference, []T / [N]T for dynamic/fixed arrays).
func String(in *Interner, id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindByte:
		return "byte"
	case KindVoidPtr:
		return "@void"
	case KindOverloadSet:
		return "<overload-set>"
	case KindFFI:
		return "ffi"
	case KindInferPlaceholder:
		return "<infer>"
	case KindInteger:
		prefix := "int"
		if !t.Signed {
			prefix = "uint"
		}
		return prefix + strconv.Itoa(int(t.BitWidth))
	case KindNamed:
		if info, ok := in.NamedInfoOf(id); ok {
			return info.Name
		}
		return "<named>"
	case KindPointer:
		return "@" + String(in, t.Elem)
	case KindReference:
		mut := ""
		if t.Mutable {
			mut = "mut "
		}
		return "&" + mut + String(in, t.Elem)
	case KindArray:
		n, _ := in.ArraySize(id)
		return fmt.Sprintf("[%d]%s", n, String(in, t.Elem))
	case KindDynamicArray:
		return "[]" + String(in, t.Elem)
	case KindStruct:
		if info, ok := in.StructInfoOf(id); ok && info.Name != "" {
			return info.Name
		}
		return "<struct>"
	case KindSum:
		if info, ok := in.SumInfoOf(id); ok && info.Name != "" {
			return info.Name
		}
		return "<sum>"
	case KindUnion:
		if info, ok := in.UnionInfoOf(id); ok && info.Name != "" {
			return info.Name
		}
		return "<union>"
	case KindEnum:
		if info, ok := in.EnumInfoOf(id); ok && info.Name != "" {
			return info.Name
		}
		return "<enum>"
	case KindFunction:
		if info, ok := in.FnInfoOf(id); ok {
			parts := make([]string, len(info.Params))
			for i, p := range info.Params {
				parts[i] = String(in, p)
			}
			return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), String(in, info.Return))
		}
		return "<function>"
	default:
		return "<invalid>"
	}
}
