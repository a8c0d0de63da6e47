package timeline

import (
	"testing"

	"cellforge/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestInterpolatePathExactEndpointBoundaries(t *testing.T) {
	original := model.Vec2{X: 0, Y: 0}
	path := []model.PathPoint{
		{Time: 1000, Pos: model.Vec2{X: 100, Y: 0}},
		{Time: 2000, Pos: model.Vec2{X: 100, Y: 100}},
	}

	if got := InterpolatePath(path, original, 1000); got != original {
		t.Fatalf("time==first.Time should return pre-path position, got %+v", got)
	}
	if got := InterpolatePath(path, original, 3000); got != path[1].Pos {
		t.Fatalf("time>last.Time should clamp to last point, got %+v", got)
	}
	mid := InterpolatePath(path, original, 1500)
	if mid.X != 100 || mid.Y != 50 {
		t.Fatalf("expected linear interpolation at midpoint, got %+v", mid)
	}
}

func TestInterpolatePathEmpty(t *testing.T) {
	original := model.Vec2{X: 5, Y: 5}
	if got := InterpolatePath(nil, original, 999); got != original {
		t.Fatalf("empty path should return original position, got %+v", got)
	}
}

func TestInterpolateObjectAppliesPatchesInOrder(t *testing.T) {
	obj := model.NetworkObject{
		PositionedObject: model.PositionedObject{ID: "item-1"},
		Exist:             false,
		State: []model.StateEvent{
			{Time: 100, Patch: model.Patch{Exist: boolPtr(true)}},
			{Time: 200, Patch: model.Patch{IsInInventory: boolPtr(true)}},
		},
	}

	at50 := InterpolateObject(obj, 50)
	if at50.Exist {
		t.Fatalf("expected exist=false before first event")
	}

	at150 := InterpolateObject(obj, 150)
	if !at150.Exist || at150.Ownership.IsInInventory {
		t.Fatalf("expected exist=true, isInInventory=false at t=150, got %+v", at150)
	}

	at250 := InterpolateObject(obj, 250)
	if !at250.Exist || !at250.Ownership.IsInInventory {
		t.Fatalf("expected both patches applied at t=250, got %+v", at250)
	}
}

func TestApplyInventoryStateEventAddModifyRemove(t *testing.T) {
	inv := model.Inventory{Rows: 1, Columns: 2, Slots: []model.InventorySlot{
		{PositionedObject: model.PositionedObject{ID: "a"}, Amount: 1},
		{PositionedObject: model.PositionedObject{ID: "b"}, Amount: 1},
	}}

	ev := model.InventoryStateEvent{
		Time:     10,
		Remove:   []string{"a"},
		Modified: []model.InventorySlot{{PositionedObject: model.PositionedObject{ID: "b"}, Amount: 5}},
		Add:      []model.InventorySlot{{PositionedObject: model.PositionedObject{ID: "c"}, Amount: 1}},
	}

	out := ApplyInventoryStateEvent(inv, ev)
	if out.SlotByID("a") != -1 {
		t.Fatalf("expected slot a removed")
	}
	if idx := out.SlotByID("b"); idx == -1 || out.Slots[idx].Amount != 5 {
		t.Fatalf("expected slot b modified to amount 5")
	}
	if out.SlotByID("c") == -1 {
		t.Fatalf("expected slot c added")
	}
}
