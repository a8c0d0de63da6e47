package planner

import "cellforge/internal/model"

func (p *Planner) requeue(npcID string, readyTime int64) {
	npc := p.npcs[npcID]
	npc.ReadyTime = readyTime
	p.npcs[npcID] = npc
}

func (p *Planner) appendPath(npcID string, points []model.PathPoint) {
	p.acc.npcPath[npcID] = append(p.acc.npcPath[npcID], points...)
}

func (p *Planner) movePosition(npcID string, pos model.Vec2) {
	npc := p.npcs[npcID]
	npc.Reposition(pos, p.now())
	p.npcs[npcID] = npc
}

func (p *Planner) appendObjectState(objectID string, ev model.StateEvent) {
	p.acc.objectState[objectID] = append(p.acc.objectState[objectID], ev)
}

func (p *Planner) appendNodeState(nodeID string, ev model.StateEvent) {
	p.acc.nodeState[nodeID] = append(p.acc.nodeState[nodeID], ev)
}

func (p *Planner) appendNPCInventoryEvent(npcID string, ev model.InventoryStateEvent) {
	p.acc.npcInventory[npcID] = append(p.acc.npcInventory[npcID], ev)
}

func (p *Planner) appendStockpileInventoryEvent(stockpileID string, ev model.InventoryStateEvent) {
	p.acc.stockpileInv[stockpileID] = append(p.acc.stockpileInv[stockpileID], ev)
}

func (p *Planner) setNPCInventory(npcID string, inv model.Inventory) {
	npc := p.npcs[npcID]
	npc.Inventory = inv
	p.npcs[npcID] = npc
}

func (p *Planner) setStockpileInventory(stockpileID string, inv model.Inventory) {
	s := p.stockpiles[stockpileID]
	s.Inventory = inv
	p.stockpiles[stockpileID] = s
}

func (p *Planner) putObject(obj model.NetworkObject) {
	p.objects[obj.ID] = obj
}
