package planner

import (
	"sort"

	"cellforge/internal/model"
	"cellforge/internal/timeline"
)

// GetState finalizes the run: NPCs gain spliced paths and appended
// inventory-state; resource nodes have their state timelines replaced
// outright; objects are pruned of stale state and garbage-collected if
// they ended exist=false with nothing pending; stockpiles gain appended
// inventory-state. If the cell lock's pause date was hit, every
// accumulated timeline is truncated to it plus one pending event.
func (p *Planner) GetState() (Output, error) {
	if err := p.validateConsistency(); err != nil {
		return Output{}, err
	}

	out := Output{}

	for _, id := range sortedKeys(p.npcs) {
		npc := p.npcs[id]
		appendedPath := p.acc.npcPath[id]
		if p.cellLock.HasPause {
			for i, pt := range appendedPath {
				if pt.Time > p.cellLock.PauseDate {
					appendedPath = appendedPath[:i+1]
					break
				}
			}
		}
		npc.Path = timeline.SplicePath(npc.Path, p.startTime, appendedPath)

		appendedInv := p.truncateInventoryEvents(p.acc.npcInventory[id])
		npc.InventoryState = append(npc.InventoryState, appendedInv...)
		out.NPCs = append(out.NPCs, npc)
	}

	for _, id := range sortedKeys(p.nodes) {
		node := p.nodes[id]
		appended := p.truncateStateEvents(p.acc.nodeState[id])
		node.State = timeline.FinalizeResourceState(appended)
		out.Nodes = append(out.Nodes, node)
	}

	for _, id := range sortedKeys(p.objects) {
		obj := p.objects[id]
		appended := p.truncateStateEvents(p.acc.objectState[id])

		if p.spawnedDuringRun(id) {
			events, err := timeline.FinalizeSpawnedObjectState(appended)
			if err != nil {
				return Output{}, err
			}
			obj.State = events
			out.Objects = append(out.Objects, obj)
			continue
		}

		events, ok := timeline.FinalizeObjectState(obj.Exist, p.startTime, obj.State, appended)
		if !ok {
			continue
		}
		obj.State = events
		out.Objects = append(out.Objects, obj)
	}

	for _, id := range sortedKeys(p.stockpiles) {
		s := p.stockpiles[id]
		appended := p.truncateInventoryEvents(p.acc.stockpileInv[id])
		s.InventoryState = append(s.InventoryState, appended...)
		out.Stockpiles = append(out.Stockpiles, s)
	}

	return out, nil
}

func (p *Planner) spawnedDuringRun(objectID string) bool {
	return p.spawnedIDs[objectID]
}

func (p *Planner) truncateStateEvents(events []model.StateEvent) []model.StateEvent {
	if !p.cellLock.HasPause {
		return events
	}
	return timeline.TruncateAtPause(events, p.cellLock.PauseDate)
}

func (p *Planner) truncateInventoryEvents(events []model.InventoryStateEvent) []model.InventoryStateEvent {
	if !p.cellLock.HasPause {
		return events
	}
	for i, ev := range events {
		if ev.Time > p.cellLock.PauseDate {
			if i+1 >= len(events) {
				return events
			}
			return events[:i+1]
		}
	}
	return events
}

func (p *Planner) validateConsistency() error {
	for id := range p.acc.nodeState {
		if _, ok := p.nodes[id]; !ok {
			return ErrInitialResourceNotFound
		}
	}
	for id := range p.acc.stockpileInv {
		if _, ok := p.stockpiles[id]; !ok {
			return ErrInitialStockpileNotFound
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
