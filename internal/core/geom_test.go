package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 4, true},
		{"right edge is exclusive", 6, 3, false},
		{"bottom edge is exclusive", 2, 5, false},
		{"left of rect", 1, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 5, 3)
	if r.Right() != 15 {
		t.Errorf("Right() = %d, want 15", r.Right())
	}
	if r.Bottom() != 23 {
		t.Errorf("Bottom() = %d, want 23", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp(-5, 0, 10) = %d, want 0", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp(15, 0, 10) = %d, want 10", got)
	}
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d, want 5", got)
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(-1.5, -1, 1); got != -1 {
		t.Errorf("ClampF(-1.5, -1, 1) = %f, want -1", got)
	}
	if got := ClampF(0.25, -1, 1); got != 0.25 {
		t.Errorf("ClampF(0.25, -1, 1) = %f, want 0.25", got)
	}
}
