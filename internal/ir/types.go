package ir

import "strconv"

// TypeKind discriminates Type.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypeI1
	TypeI32
	TypeI64
	TypeF32
	TypeF64
	TypePtr
)

// Type is a value type. Pointer types carry the address space of the
// memory they point into; before flavoring that number is a logical
// address-space category, after flavoring it is a target-specific one.
type Type struct {
	Kind      TypeKind
	Elem      *Type  // TypePtr only
	AddrSpace uint32 // TypePtr only
}

func Void() Type { return Type{Kind: TypeVoid} }
func I1() Type   { return Type{Kind: TypeI1} }
func I32() Type  { return Type{Kind: TypeI32} }
func I64() Type  { return Type{Kind: TypeI64} }
func F32() Type  { return Type{Kind: TypeF32} }
func F64() Type  { return Type{Kind: TypeF64} }

// Ptr builds a pointer type into the given address space.
func Ptr(elem Type, addrSpace uint32) Type {
	e := elem
	return Type{Kind: TypePtr, Elem: &e, AddrSpace: addrSpace}
}

// String returns a compact printable form, e.g. "ptr(1) i64".
func (t Type) String() string {
	switch t.Kind {
	case TypeVoid:
		return "void"
	case TypeI1:
		return "i1"
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypePtr:
		elem := "?"
		if t.Elem != nil {
			elem = t.Elem.String()
		}
		return "ptr(" + strconv.FormatUint(uint64(t.AddrSpace), 10) + ") " + elem
	default:
		return "unknown"
	}
}
