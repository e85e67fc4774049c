package core

import "testing"

func TestInputFrameClearKeepsTilt(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Tilt = 0.5

	if !f.Has(ActionLeft) {
		t.Fatal("Has(ActionLeft) should be true after Set")
	}

	f.Clear()

	if f.Has(ActionLeft) {
		t.Error("Clear should reset actions")
	}
	if f.Tilt != 0.5 {
		t.Errorf("Clear should keep tilt, got %f", f.Tilt)
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionRight) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionRight)
	if !f.Has(ActionRight) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionSettings.String() != "Settings" {
		t.Errorf("ActionSettings.String() = %q", ActionSettings.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action String() = %q", Action(99).String())
	}
}
