// Package ir defines the target-independent intermediate representation
// consumed by the backend translators. A module is produced once by the
// front half of the compiler, then flavored in place for a specific
// execution target and handed to an external toolchain.
package ir

// Names of the low-level intrinsics the flattening pipeline rewrites.
// Their definitions live in the per-target builtin bitcode library.
const (
	WorkItemIDFn   = "__sscp_work_item_id"
	NumWorkItemsFn = "__sscp_num_work_items"
)

// KernelAnnotations is the module-level metadata collection naming the
// compilation entry points. Downstream tooling enumerates entry points
// from this collection instead of re-deriving them from build inputs.
const KernelAnnotations = "sscp.annotations"

// KernelAnnotationKind is the Kind carried by entry-point annotations.
const KernelAnnotationKind = "kernel"

// KernelAnnotationMarker is the Marker carried by entry-point annotations.
const KernelAnnotationMarker int32 = 1

// Annotation is one structured record in a named metadata collection.
type Annotation struct {
	Func   string
	Kind   string
	Marker int32
}

// Global is a module-level variable.
type Global struct {
	Name      string
	Type      Type
	AddrSpace uint32
	IsConst   bool
}

// Module is one compilation unit: functions, globals and named metadata.
type Module struct {
	Name     string
	Triple   string
	Funcs    []*Func
	Globals  []Global
	Metadata map[string][]Annotation
}

// Find returns the function with the given name, or nil.
func (m *Module) Find(name string) *Func {
	for _, f := range m.Funcs {
		if f != nil && f.Name == name {
			return f
		}
	}
	return nil
}

// Annotate appends one record to the named metadata collection,
// creating the collection on first use.
func (m *Module) Annotate(collection string, ann Annotation) {
	if m.Metadata == nil {
		m.Metadata = make(map[string][]Annotation)
	}
	m.Metadata[collection] = append(m.Metadata[collection], ann)
}

// Annotations returns the records of the named collection, or nil.
func (m *Module) Annotations(collection string) []Annotation {
	if m.Metadata == nil {
		return nil
	}
	return m.Metadata[collection]
}
