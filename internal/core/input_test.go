package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionPause) {
		t.Error("New frame should have no actions")
	}

	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Has(ActionPause) should be true after Set")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("Zero frame should report no actions")
	}
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate the action map")
	}
}

func TestInputFramePressOrder(t *testing.T) {
	f := NewInputFrame()
	f.Press(2)
	f.Press(0)
	f.Press(2)

	expected := []int{2, 0, 2}
	if len(f.Lanes) != len(expected) {
		t.Fatalf("Lanes = %v, expected %v", f.Lanes, expected)
	}
	for i := range expected {
		if f.Lanes[i] != expected[i] {
			t.Errorf("Lanes[%d] = %d, expected %d", i, f.Lanes[i], expected[i])
		}
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRestart)
	f.Press(1)

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionRestart) || len(f.Lanes) != 0 {
		t.Error("Clear should drop actions and presses")
	}
	if !clone.Has(ActionRestart) || len(clone.Lanes) != 1 || clone.Lanes[0] != 1 {
		t.Error("Clone should be independent of the original")
	}
}

func TestEndReasonString(t *testing.T) {
	tests := map[EndReason]string{
		ReasonNone:      "none",
		ReasonMaxMisses: "max misses",
		ReasonCompleted: "completed",
		ReasonAborted:   "aborted",
		EndReason(99):   "unknown",
	}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("EndReason(%d).String() = %q, expected %q", int(r), got, want)
		}
	}
}
