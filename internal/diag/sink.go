package diag

import "fmt"

// Sink accumulates failure descriptions in arrival order.
// The zero value is ready to use.
type Sink struct {
	msgs []string
}

// Append adds one message to the sink.
func (s *Sink) Append(msg string) {
	s.msgs = append(s.msgs, msg)
}

// Appendf formats and adds one message to the sink.
func (s *Sink) Appendf(format string, args ...any) {
	s.msgs = append(s.msgs, fmt.Sprintf(format, args...))
}

// Len returns the number of accumulated messages.
func (s *Sink) Len() int {
	return len(s.msgs)
}

// Messages returns a read-only view of the accumulated messages.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Sink)
func (s *Sink) Messages() []string {
	return s.msgs
}

// Last returns the most recent message, or "" if the sink is empty.
func (s *Sink) Last() string {
	if len(s.msgs) == 0 {
		return ""
	}
	return s.msgs[len(s.msgs)-1]
}
