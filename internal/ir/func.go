package ir

// Linkage controls whether whole-module optimization may discard a
// function as dead code.
type Linkage uint8

const (
	// LinkInternal is the default for non-entry functions.
	LinkInternal Linkage = iota
	// LinkExternal marks a function externally visible.
	LinkExternal
)

func (l Linkage) String() string {
	switch l {
	case LinkInternal:
		return "internal"
	case LinkExternal:
		return "external"
	default:
		return "unknown"
	}
}

// LocalID indexes Func.Locals.
type LocalID uint32

// Param is a function parameter.
type Param struct {
	Name string
	Type Type
}

// Local is a function-scoped slot.
type Local struct {
	Name string
	Type Type
}

// Func is one function. A function with no blocks is a declaration; its
// definition is expected to arrive via builtin-library linking.
type Func struct {
	Name    string
	Linkage Linkage
	Params  []Param
	Result  Type
	Locals  []Local
	Blocks  []Block
	Entry   BlockID
}

// IsDecl reports whether f is a declaration without a body.
func (f *Func) IsDecl() bool {
	return len(f.Blocks) == 0
}

// AddLocal appends a local slot and returns its ID.
func (f *Func) AddLocal(name string, ty Type) LocalID {
	f.Locals = append(f.Locals, Local{Name: name, Type: ty})
	return LocalID(len(f.Locals) - 1)
}

// AddBlock appends an empty block and returns its ID.
func (f *Func) AddBlock() BlockID {
	id := BlockID(len(f.Blocks))
	f.Blocks = append(f.Blocks, Block{ID: id})
	return id
}

// Block returns the block with the given ID, or nil if out of range.
func (f *Func) Block(id BlockID) *Block {
	if int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}
