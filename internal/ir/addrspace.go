package ir

// AddressSpace is a logical memory-region category. In an unflavored
// module every pointer's AddrSpace number is one of these categories;
// flavoring rewrites them to the target's physical numbering via an
// AddressSpaceMap.
type AddressSpace uint8

const (
	ASGeneric AddressSpace = iota
	ASGlobal
	ASLocal
	ASPrivate
	ASConstant
	ASAllocaDefault
	ASGlobalVariableDefault
	ASConstantGlobalVariableDefault

	NumAddressSpaces
)

func (as AddressSpace) String() string {
	switch as {
	case ASGeneric:
		return "generic"
	case ASGlobal:
		return "global"
	case ASLocal:
		return "local"
	case ASPrivate:
		return "private"
	case ASConstant:
		return "constant"
	case ASAllocaDefault:
		return "alloca-default"
	case ASGlobalVariableDefault:
		return "global-variable-default"
	case ASConstantGlobalVariableDefault:
		return "constant-global-variable-default"
	default:
		return "unknown"
	}
}

// AddressSpaceMap maps every logical category to a target address-space
// number. It is total: every category has an entry. Each target
// translator supplies its own map.
type AddressSpaceMap [NumAddressSpaces]uint32

// For returns the target number for a logical category. Numbers outside
// the logical range are assumed already target-specific and returned
// unchanged.
func (m AddressSpaceMap) For(n uint32) uint32 {
	if n >= uint32(NumAddressSpaces) {
		return n
	}
	return m[n]
}
