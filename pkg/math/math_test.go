package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := UnitX.Cross(UnitY)
	if got != UnitZ {
		t.Errorf("Vec3.Cross() = %v, want %v", got, UnitZ)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	if l := n.Length(); abs(l-1) > 0.0001 {
		t.Errorf("Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{-1, 0},
		{0.5, 0.5},
		{3, 2},
	}
	for _, tt := range tests {
		if got := Clamp(tt.x, 0, 2); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestRotateY90(t *testing.T) {
	p := RotateY(math32.Pi / 2).TransformPoint(UnitX)
	if !p.ApproxEqual(Vec3{0, 0, -1}, 0.001) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", p)
	}
}

func TestTranslate(t *testing.T) {
	p := Translate(Vec3{10, 20, 30}).TransformPoint(Vec3{1, 2, 3})
	if p != (Vec3{11, 22, 33}) {
		t.Errorf("Translate: got %v, want (11, 22, 33)", p)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(Vec3{1, 2, 3}).Mul(RotateY(0.7))
	got := m.Mul(m.Inverse())
	id := Identity()
	for i := range got {
		if abs(got[i]-id[i]) > 0.0001 {
			t.Fatalf("M * M^-1 element %d = %v, want %v", i, got[i], id[i])
		}
	}
}

func TestOrthoMapsBoxToNDC(t *testing.T) {
	m := Ortho(-10, 10, -5, 5, 0.1, 100)
	p := m.TransformPoint(Vec3{10, 5, -0.1})
	if !p.ApproxEqual(Vec3{1, 1, -1}, 0.0001) {
		t.Errorf("Ortho corner: got %v, want (1, 1, -1)", p)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 100}
	m := LookAt(eye, Vec3{}, UnitY)
	if p := m.TransformPoint(eye); !p.ApproxEqual(Vec3{}, 0.0001) {
		t.Errorf("eye in view space: got %v, want origin", p)
	}
	if p := m.TransformPoint(Vec3{}); !p.ApproxEqual(Vec3{0, 0, -100}, 0.001) {
		t.Errorf("target in view space: got %v, want (0, 0, -100)", p)
	}
}

func TestQuatRotateMatchesRotateY(t *testing.T) {
	q := QuatFromAxisAngle(UnitY, 0.9)
	got := q.Rotate(Vec3{1, 2, 3})
	want := RotateY(0.9).TransformPoint(Vec3{1, 2, 3})
	if !got.ApproxEqual(want, 0.0001) {
		t.Errorf("Quat.Rotate = %v, want %v", got, want)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(UnitY, 0.4)
	b := QuatFromAxisAngle(UnitY, 0.5)
	got := a.Mul(b).Rotate(UnitX)
	want := QuatFromAxisAngle(UnitY, 0.9).Rotate(UnitX)
	if !got.ApproxEqual(want, 0.0001) {
		t.Errorf("a*b rotate = %v, want %v", got, want)
	}
}

func TestQuatZeroAxis(t *testing.T) {
	if q := QuatFromAxisAngle(Vec3{}, 1); q != QuatIdentity() {
		t.Errorf("zero axis should give identity, got %v", q)
	}
}
