package anim

import "testing"

func TestParamFixedNeverChanges(t *testing.T) {
	p := NewParamFixed(5)
	v, a, j := CubicTerms(10)
	p.Update(v, a, j)
	if p.Value != 5 {
		t.Fatalf("fixed param changed: got %v", p.Value)
	}
}

func TestParamWithSpeedIsLinear(t *testing.T) {
	p := NewParamWithSpeed(0, 2)
	v, a, j := CubicTerms(3)
	p.Update(v, a, j)
	if p.Value != 6 {
		t.Fatalf("expected 2*3=6, got %v", p.Value)
	}
}

func TestParamWithJerkMatchesCubicFormula(t *testing.T) {
	p := NewParamWithJerk(1, 2, 3, 4)
	elapsed := float32(2)
	v, a, j := CubicTerms(elapsed)
	p.Update(v, a, j)

	want := float32(1) + 2*v + 3*a + 4*j
	if p.Value != want {
		t.Fatalf("Value = %v, want %v", p.Value, want)
	}
}

func TestCubicTermsAreElapsedPowers(t *testing.T) {
	v, a, j := CubicTerms(2)
	if v != 2 || a != 4 || j != 8 {
		t.Fatalf("CubicTerms(2) = (%v, %v, %v), want (2, 4, 8)", v, a, j)
	}
}
