// Package timeline implements the pure interpolation functions that turn
// an entity's appended state/path/inventory-state timelines into a
// concrete snapshot at an arbitrary wall-clock time, plus the
// output-finalization helpers the planner uses to prune and splice them.
package timeline

import "cellforge/internal/model"

// ApplyPatch overlays a non-nil Patch field onto obj and returns the result.
func ApplyPatch(obj model.NetworkObject, patch model.Patch) model.NetworkObject {
	if patch.Pos != nil {
		obj.Pos = *patch.Pos
		obj.CellID = model.CellOf(*patch.Pos)
	}
	if patch.Amount != nil {
		obj.Amount = *patch.Amount
	}
	if patch.Exist != nil {
		obj.Exist = *patch.Exist
	}
	if patch.GrabbedByPersonID != nil {
		obj.Ownership.GrabbedByPersonID = *patch.GrabbedByPersonID
	}
	if patch.GrabbedByNPCID != nil {
		obj.Ownership.GrabbedByNPCID = *patch.GrabbedByNPCID
	}
	if patch.InsideStockpile != nil {
		obj.Ownership.InsideStockpile = *patch.InsideStockpile
	}
	if patch.IsInInventory != nil {
		obj.Ownership.IsInInventory = *patch.IsInInventory
	}
	return obj
}

// InterpolateObject replays every state event with Time <= at onto base, in
// timeline order, and returns the resulting snapshot.
func InterpolateObject(base model.NetworkObject, at int64) model.NetworkObject {
	out := base
	for _, ev := range base.State {
		if ev.Time > at {
			break
		}
		out = ApplyPatch(out, ev.Patch)
		out.LastUpdate = ev.Time
	}
	return out
}

// ApplyResourcePatch overlays a Patch onto a ResourceNode snapshot.
func ApplyResourcePatch(node model.ResourceNode, patch model.Patch) model.ResourceNode {
	if patch.Pos != nil {
		node.Pos = *patch.Pos
		node.CellID = model.CellOf(*patch.Pos)
	}
	if patch.Depleted != nil {
		node.Depleted = *patch.Depleted
	}
	if patch.ReadyTime != nil {
		node.ReadyTime = *patch.ReadyTime
	}
	return node
}

// InterpolateResource replays a resource node's state timeline up to at.
func InterpolateResource(base model.ResourceNode, at int64) model.ResourceNode {
	out := base
	for _, ev := range base.State {
		if ev.Time > at {
			break
		}
		out = ApplyResourcePatch(out, ev.Patch)
		out.LastUpdate = ev.Time
	}
	return out
}

// InterpolatePath returns an NPC's position at time t, given a piecewise
// linear path. Two boundary rules are load-bearing and intentionally
// preserved: t == path[0].Time returns originalPos (the position held
// before the path began, not path[0].Pos), and t > last point's time
// clamps to the last point rather than extrapolating.
func InterpolatePath(path []model.PathPoint, originalPos model.Vec2, t int64) model.Vec2 {
	if len(path) == 0 {
		return originalPos
	}
	if t <= path[0].Time {
		return originalPos
	}
	last := path[len(path)-1]
	if t >= last.Time {
		return last.Pos
	}
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		if t >= a.Time && t < b.Time {
			span := b.Time - a.Time
			if span <= 0 {
				return b.Pos
			}
			frac := float64(t-a.Time) / float64(span)
			return model.Vec2{
				X: a.Pos.X + int64(float64(b.Pos.X-a.Pos.X)*frac),
				Y: a.Pos.Y + int64(float64(b.Pos.Y-a.Pos.Y)*frac),
			}
		}
	}
	return last.Pos
}

// ApplyInventoryStateEvent overlays one InventoryStateEvent onto inv.
func ApplyInventoryStateEvent(inv model.Inventory, ev model.InventoryStateEvent) model.Inventory {
	out := inv.Clone()
	if ev.Rows != nil {
		out.Rows = *ev.Rows
	}
	if ev.Columns != nil {
		out.Columns = *ev.Columns
	}
	for _, remove := range ev.Remove {
		if idx := out.SlotByID(remove); idx >= 0 {
			out.Slots = append(out.Slots[:idx], out.Slots[idx+1:]...)
		}
	}
	for _, mod := range ev.Modified {
		if idx := out.SlotByID(mod.ID); idx >= 0 {
			out.Slots[idx] = mod
		}
	}
	out.Slots = append(out.Slots, ev.Add...)
	return out
}

// InterpolateInventory replays every inventory-state event with Time <= at.
func InterpolateInventory(base model.Inventory, events []model.InventoryStateEvent, at int64) model.Inventory {
	out := base
	for _, ev := range events {
		if ev.Time > at {
			break
		}
		out = ApplyInventoryStateEvent(out, ev)
	}
	return out
}
