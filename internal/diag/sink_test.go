package diag

import "testing"

func TestSinkAppendOrder(t *testing.T) {
	var s Sink
	if s.Len() != 0 || s.Last() != "" {
		t.Fatalf("zero sink should be empty, got len=%d last=%q", s.Len(), s.Last())
	}

	s.Append("first")
	s.Appendf("second %d", 2)
	s.Append("third")

	want := []string{"first", "second 2", "third"}
	got := s.Messages()
	if len(got) != len(want) {
		t.Fatalf("unexpected message count: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d: want %q, got %q", i, want[i], got[i])
		}
	}
	if s.Last() != "third" {
		t.Fatalf("unexpected last message: %q", s.Last())
	}
}
