package planner

import (
	"sort"

	"cellforge/internal/model"
)

func (p *Planner) sortedNodeIDs() []string {
	ids := make([]string, 0, len(p.nodes))
	for id := range p.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p *Planner) sortedStockpileIDs() []string {
	ids := make([]string, 0, len(p.stockpiles))
	for id := range p.stockpiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// nearestReadyNode returns the id of the nearest resource node that is
// either never depleted or ready again by now.
func (p *Planner) nearestReadyNode(from model.Vec2, now int64) (string, bool) {
	best := ""
	bestDist := int64(-1)
	for _, id := range p.sortedNodeIDs() {
		node := p.nodes[id]
		if node.Depleted && now < node.ReadyTime {
			continue
		}
		dist := model.ManhattanDistance(from, node.Pos)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = id, dist
		}
	}
	return best, best != ""
}

// nearestStockpileWithCapacity returns the nearest stockpile with a free
// slot.
func (p *Planner) nearestStockpileWithCapacity(from model.Vec2) (string, bool) {
	best := ""
	bestDist := int64(-1)
	for _, id := range p.sortedStockpileIDs() {
		s := p.stockpiles[id]
		if len(s.Inventory.Slots) >= s.Inventory.Capacity() {
			continue
		}
		dist := model.ManhattanDistance(from, s.Pos)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = id, dist
		}
	}
	return best, best != ""
}

// nearestStockpileWithMaterials returns the nearest stockpile that holds
// at least required[type] of every required input.
func (p *Planner) nearestStockpileWithMaterials(from model.Vec2, required map[string]int64) (string, bool) {
	best := ""
	bestDist := int64(-1)
	for _, id := range p.sortedStockpileIDs() {
		s := p.stockpiles[id]
		if !stockpileHas(s, required) {
			continue
		}
		dist := model.ManhattanDistance(from, s.Pos)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = id, dist
		}
	}
	return best, best != ""
}

func stockpileHas(s model.Stockpile, required map[string]int64) bool {
	available := map[string]int64{}
	for _, slot := range s.Inventory.Slots {
		available[slot.ObjectType] += slot.Amount
	}
	for t, qty := range required {
		if available[t] < qty {
			return false
		}
	}
	return true
}

// homeOf returns the House belonging to npcID, if any.
func (p *Planner) homeOf(npcID string) (model.House, bool) {
	for _, h := range p.houses {
		if h.NPCID == npcID {
			return h, true
		}
	}
	return model.House{}, false
}
