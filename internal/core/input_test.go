package core

import "testing"

func TestFrameOf(t *testing.T) {
	f := FrameOf(ActionLeft, ActionUndo)

	if !f.Has(ActionLeft) || !f.Has(ActionUndo) {
		t.Error("FrameOf should set every given action")
	}
	if f.Has(ActionRight) {
		t.Error("FrameOf set an action it was not given")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove all actions")
	}
}

func TestZeroFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) || !f.Empty() {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on a zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	if ActionUndo.String() != "Undo" {
		t.Errorf("ActionUndo.String() = %q", ActionUndo.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
