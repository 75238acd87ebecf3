package tokens

import "testing"

func TestEstimate(t *testing.T) {
	if got := Estimate(""); got != 0 {
		t.Errorf("Estimate(\"\") = %d, want 0", got)
	}

	short := Estimate("hello world")
	long := Estimate("hello world, this is a much longer sentence about travel planning")
	if short <= 0 {
		t.Errorf("expected positive estimate, got %d", short)
	}
	if long <= short {
		t.Errorf("longer text should estimate more tokens: %d <= %d", long, short)
	}
}
