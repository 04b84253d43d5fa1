package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent higher-level/coarser events.
type Scope uint8

const (
	// ScopeDriver represents top-level CLI operations.
	ScopeDriver Scope = iota + 1
	// ScopeTranslate represents flavoring and code-generation stages.
	ScopeTranslate
	// ScopeTool represents external toolchain invocations.
	ScopeTool
	// ScopePass represents individual pipeline passes (most detailed).
	ScopePass
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeTranslate:
		return "translate"
	case ScopePass:
		return "pass"
	case ScopeTool:
		return "tool"
	default:
		return "unknown"
	}
}

// Event is one trace record.
type Event struct {
	Seq    uint64
	Time   time.Time
	Kind   Kind
	Scope  Scope
	SpanID uint64
	Name   string
	Note   string
	Dur    time.Duration // KindSpanEnd only
}
