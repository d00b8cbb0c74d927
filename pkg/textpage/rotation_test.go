package textpage

import "testing"

func TestRotationFromMatrix(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want Rotation
	}{
		{"upright", Matrix{A: 1, D: -1}, Rotate0},
		{"upside down", Matrix{A: -1, D: 1}, Rotate180},
		{"rotated 90", Matrix{B: 1, C: 1}, Rotate90},
		{"rotated 270", Matrix{B: -1, C: -1}, Rotate270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RotationFromMatrix(tt.m); got != tt.want {
				t.Errorf("RotationFromMatrix(%+v) = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestPrimarySecondaryOf(t *testing.T) {
	if got := Rotate0.PrimaryOf(3, 7); got != 3 {
		t.Errorf("Rotate0.PrimaryOf = %v, want 3", got)
	}
	if got := Rotate0.SecondaryOf(3, 7); got != 7 {
		t.Errorf("Rotate0.SecondaryOf = %v, want 7", got)
	}
	if got := Rotate90.PrimaryOf(3, 7); got != 7 {
		t.Errorf("Rotate90.PrimaryOf = %v, want 7", got)
	}
	if got := Rotate90.SecondaryOf(3, 7); got != 3 {
		t.Errorf("Rotate90.SecondaryOf = %v, want 3", got)
	}
}

func TestSignAndAscending(t *testing.T) {
	if Rotate0.Sign() != 1 || Rotate90.Sign() != 1 {
		t.Errorf("Rotate0/90 should have positive sign")
	}
	if Rotate180.Sign() != -1 || Rotate270.Sign() != -1 {
		t.Errorf("Rotate180/270 should have negative sign")
	}
	if !Rotate0.Ascending() || !Rotate90.Ascending() {
		t.Errorf("Rotate0/90 should be ascending")
	}
	if Rotate180.Ascending() || Rotate270.Ascending() {
		t.Errorf("Rotate180/270 should not be ascending")
	}
}
