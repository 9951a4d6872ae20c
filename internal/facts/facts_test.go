package facts

import (
	"reflect"
	"testing"

	"github.com/brzaa/math-practice-kids/internal/models"
)

func TestEnumerateAddition(t *testing.T) {
	fs := Enumerate(0, 3, models.ModeAddition, false)

	if len(fs) != 16 {
		t.Fatalf("len = %d, want 16", len(fs))
	}
	for _, f := range fs {
		if f.Op != models.Addition {
			t.Errorf("op = %s, want addition", f.Op)
		}
		if f.Left < 0 || f.Left > 3 || f.Right < 0 || f.Right > 3 {
			t.Errorf("operands out of range: %v", f)
		}
	}

	want := models.Fact{Op: models.Addition, Left: 2, Right: 3}
	found := false
	for _, f := range fs {
		if f == want {
			found = true
		}
	}
	if !found {
		t.Error("2+3 missing from enumeration")
	}
	if want.Answer() != 5 {
		t.Errorf("2+3 = %d, want 5", want.Answer())
	}
}

func TestEnumerateSubtractionNonNegative(t *testing.T) {
	fs := Enumerate(0, 3, models.ModeSubtraction, true)

	// Sum over left of (left - min + 1): 1+2+3+4 = 10.
	if len(fs) != 10 {
		t.Fatalf("len = %d, want 10", len(fs))
	}
	for _, f := range fs {
		if f.Left < f.Right {
			t.Errorf("negative result pair included: %v", f)
		}
	}

	has := func(left, right int) bool {
		for _, f := range fs {
			if f.Left == left && f.Right == right {
				return true
			}
		}
		return false
	}
	if has(1, 2) {
		t.Error("1-2 should be excluded")
	}
	if !has(2, 1) {
		t.Error("2-1 should be included")
	}
	if got := (models.Fact{Op: models.Subtraction, Left: 2, Right: 1}).Answer(); got != 1 {
		t.Errorf("2-1 = %d, want 1", got)
	}
}

func TestEnumerateSubtractionAllowNegative(t *testing.T) {
	fs := Enumerate(0, 3, models.ModeSubtraction, false)
	if len(fs) != 16 {
		t.Errorf("len = %d, want 16", len(fs))
	}
}

func TestEnumerateMixed(t *testing.T) {
	fs := Enumerate(0, 3, models.ModeMixed, true)
	if len(fs) != 26 {
		t.Errorf("len = %d, want 26 (16 addition + 10 subtraction)", len(fs))
	}
}

func TestFactIDInjective(t *testing.T) {
	fs := Enumerate(0, 5, models.ModeMixed, false)
	seen := make(map[string]models.Fact, len(fs))
	for _, f := range fs {
		id := f.ID()
		if prev, ok := seen[id]; ok {
			t.Fatalf("id %q shared by %v and %v", id, prev, f)
		}
		seen[id] = f
	}

	f := models.Fact{Op: models.Addition, Left: 2, Right: 3}
	if f.ID() != (models.Fact{Op: models.Addition, Left: 2, Right: 3}).ID() {
		t.Error("same triple should yield the same id")
	}
	if f.ID() == (models.Fact{Op: models.Subtraction, Left: 2, Right: 3}).ID() {
		t.Error("different operations should yield different ids")
	}
}

func TestBoundaryTargets(t *testing.T) {
	tests := []struct {
		min, max int
		want     []int
	}{
		{0, 10, []int{0, 10}},
		{0, 12, []int{0, 10, 12}},
		{0, 20, []int{0, 10, 20}},
		{5, 9, []int{9}},
		{11, 19, []int{19}},
		{0, 100, []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}},
	}
	for _, tt := range tests {
		got := BoundaryTargets(tt.min, tt.max)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("BoundaryTargets(%d, %d) = %v, want %v", tt.min, tt.max, got, tt.want)
		}
	}
}

func TestWeighBalanced(t *testing.T) {
	targets := BoundaryTargets(0, 20)
	for _, f := range Enumerate(0, 20, models.ModeMixed, true) {
		if w := Weigh(f, models.DifficultyBalanced, targets); w != 1 {
			t.Fatalf("balanced weight for %v = %d, want 1", f, w)
		}
	}
}

func TestWeighFocusBoundaries(t *testing.T) {
	targets := BoundaryTargets(0, 20)

	tests := []struct {
		name string
		fact models.Fact
		want int
	}{
		{"carry", models.Fact{Op: models.Addition, Left: 7, Right: 5}, WeightCrossing},
		{"carry exact ten", models.Fact{Op: models.Addition, Left: 6, Right: 4}, WeightCrossing},
		{"borrow", models.Fact{Op: models.Subtraction, Left: 12, Right: 5}, WeightCrossing},
		{"near boundary result", models.Fact{Op: models.Addition, Left: 5, Right: 3}, WeightBoundary},
		{"near boundary operand", models.Fact{Op: models.Addition, Left: 11, Right: 3}, WeightBoundary},
		{"plain", models.Fact{Op: models.Addition, Left: 13, Right: 4}, WeightBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Weigh(tt.fact, models.DifficultyFocusBoundaries, targets); got != tt.want {
				t.Errorf("Weigh(%v) = %d, want %d", tt.fact, got, tt.want)
			}
		})
	}
}

func TestWeighNeverBelowOne(t *testing.T) {
	targets := BoundaryTargets(0, 50)
	for _, f := range Enumerate(0, 50, models.ModeMixed, true) {
		if w := Weigh(f, models.DifficultyFocusBoundaries, targets); w < 1 {
			t.Fatalf("weight for %v = %d, below 1", f, w)
		}
	}
}
