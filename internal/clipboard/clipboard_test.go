package clipboard

import (
	"errors"
	"testing"
)

func TestDiscard(t *testing.T) {
	if err := (Discard{}).Copy("secret"); err != nil {
		t.Fatalf("discard copy: %v", err)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}

	if err := r.Copy("one"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if err := r.Copy("two"); err != nil {
		t.Fatalf("copy: %v", err)
	}

	if r.Last != "two" {
		t.Errorf("Last = %q, want two", r.Last)
	}
	if r.Count != 2 {
		t.Errorf("Count = %d, want 2", r.Count)
	}
}

func TestRecorderError(t *testing.T) {
	want := errors.New("boom")
	r := &Recorder{Err: want}

	if err := r.Copy("x"); !errors.Is(err, want) {
		t.Fatalf("copy: got %v, want %v", err, want)
	}
	if r.Count != 0 || r.Last != "" {
		t.Errorf("failed copy was recorded: %+v", r)
	}
}
