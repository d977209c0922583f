package stepper

import "testing"

func TestSequenceSegments(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{7, 6},
	}
	for _, tt := range tests {
		s := make(Sequence, tt.n)
		if got := s.Segments(); got != tt.want {
			t.Errorf("Segments() with %d steps = %d, want %d", tt.n, got, tt.want)
		}
		if s.Len() != tt.n {
			t.Errorf("Len() = %d, want %d", s.Len(), tt.n)
		}
	}
}

func TestSequenceFirstLast(t *testing.T) {
	var empty Sequence
	if _, ok := empty.First(); ok {
		t.Error("First() on empty sequence reported ok")
	}
	if _, ok := empty.Last(); ok {
		t.Error("Last() on empty sequence reported ok")
	}

	single := Sequence{NewStep(Green, Green, "only")}
	first, _ := single.First()
	last, _ := single.Last()
	if first != last {
		t.Errorf("single step: First() = %+v, Last() = %+v", first, last)
	}

	s := exampleSteps()
	if f, _ := s.First(); f.Label != "No" {
		t.Errorf("First().Label = %q", f.Label)
	}
	if l, _ := s.Last(); l.Label != "Yes" {
		t.Errorf("Last().Label = %q", l.Label)
	}
}

func TestSequenceClone(t *testing.T) {
	s := exampleSteps()
	c := s.Clone()
	c[0].Label = "changed"
	if s[0].Label != "No" {
		t.Error("Clone shares its backing array with the original")
	}
	if Sequence(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestStepHasLabel(t *testing.T) {
	if (Step{}).HasLabel() {
		t.Error("zero step should have no label")
	}
	if !NewStep(Green, Gray, "x").HasLabel() {
		t.Error("labelled step should report HasLabel")
	}
}
