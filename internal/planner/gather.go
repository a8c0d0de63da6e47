package planner

import (
	"context"

	"cellforge/internal/harvest"
	"cellforge/internal/inventory"
	"cellforge/internal/model"
	"cellforge/logging"
	harvestlog "cellforge/logging/harvest"
	invlog "cellforge/logging/inventory"
	plannerlog "cellforge/logging/planner"
)

func (p *Planner) harvesterFor(nodeID string) (*harvest.Node, error) {
	if h, ok := p.harvesters[nodeID]; ok {
		return h, nil
	}
	node := p.nodes[nodeID]
	h, err := harvest.NewNode(node.RNGState, node.Spawns)
	if err != nil {
		return nil, err
	}
	p.harvesters[nodeID] = h
	return h, nil
}

// dispatchGather sends an idle-inventory NPC to the nearest ready resource
// node, harvests it, and picks the spawned item up. A full inventory
// routes to the deposit sub-routine instead, and no ready node advances
// the clock for a later rescan.
func (p *Planner) dispatchGather(npc model.NPC) error {
	if len(npc.Inventory.Slots) >= npc.Inventory.Capacity() {
		return p.deposit(npc)
	}

	nodeID, ok := p.nearestReadyNode(npc.Pos, p.now())
	if !ok {
		// No resource ready anywhere: advance the clock and let the next
		// scan re-evaluate, per spec instead of touching the NPC's own
		// readyTime (which would otherwise re-select it in a tight loop).
		plannerlog.NoResourceReady(context.Background(), p.publisher, 0, logging.EntityRef{ID: npc.ID, Kind: logging.EntityKindNPC}, plannerlog.NoResourceReadyPayload{NPCID: npc.ID, AtMS: p.now()})
		p.simClock += tickMS
		return nil
	}
	node := p.nodes[nodeID]

	leg := walkTo(npc.Pos, node.Pos, p.now())
	p.appendPath(npc.ID, leg.points)
	arrival := leg.arrival
	harvestTime := arrival + WaitAfterWalk

	spawner, err := p.harvesterFor(nodeID)
	if err != nil {
		return err
	}
	spawn := spawner.Spawn()
	node.RNGState = spawner.SaveState()

	respawnTime := harvestTime + spawn.RespawnDelay
	depleted := true
	p.appendNodeState(nodeID, model.StateEvent{Time: harvestTime, Patch: model.Patch{Depleted: &depleted, ReadyTime: &respawnTime}})
	notDepleted := false
	p.appendNodeState(nodeID, model.StateEvent{Time: respawnTime, Patch: model.Patch{Depleted: &notDepleted}})
	node.Depleted = true
	node.ReadyTime = respawnTime
	p.nodes[nodeID] = node

	nodeRef := logging.EntityRef{ID: nodeID, Kind: logging.EntityKindNode}
	harvestlog.NodeDepleted(context.Background(), p.publisher, 0, nodeRef, harvestlog.NodeDepletedPayload{NodeID: nodeID, RespawnTime: respawnTime})
	harvestlog.NodeRespawned(context.Background(), p.publisher, 0, nodeRef, harvestlog.NodeRespawnedPayload{NodeID: nodeID})

	itemPos := model.Vec2{X: node.Pos.X + spawn.Jitter.X, Y: node.Pos.Y + spawn.Jitter.Y}
	item := model.NetworkObject{
		PositionedObject: model.PositionedObject{ID: spawn.ItemID, Pos: itemPos, CellID: model.CellOf(itemPos), LastUpdate: harvestTime},
		ObjectType:       spawn.ObjectType,
		Amount:           1,
		Exist:            false,
	}
	existTrue := true
	p.appendObjectState(item.ID, model.StateEvent{Time: harvestTime, Patch: model.Patch{Exist: &existTrue}})
	p.spawnedIDs[item.ID] = true
	p.putObject(item)
	harvestlog.ItemSpawned(context.Background(), p.publisher, 0, nodeRef, harvestlog.ItemSpawnedPayload{NodeID: nodeID, ItemID: item.ID, ObjectType: item.ObjectType})

	pickupTime := harvestTime + WaitAfterPickup
	nextInv, txn, err := inventory.PickUp(npc.Inventory, item, inventory.HolderRef{Kind: inventory.HolderNPC, ID: npc.ID}, pickupTime)
	if err != nil {
		invlog.PickUpFailed(context.Background(), p.publisher, 0, logging.EntityRef{ID: npc.ID, Kind: logging.EntityKindNPC}, invlog.PickUpFailedPayload{ObjectType: item.ObjectType, Reason: err.Error()})
		p.movePosition(npc.ID, node.Pos)
		p.requeue(npc.ID, pickupTime)
		return nil
	}
	p.setNPCInventory(npc.ID, nextInv)

	isInInventory := true
	grabbedBy := npc.ID
	p.appendObjectState(item.ID, model.StateEvent{Time: pickupTime, Patch: model.Patch{IsInInventory: &isInInventory, GrabbedByNPCID: &grabbedBy}})

	invEvent := model.InventoryStateEvent{Time: pickupTime}
	if txn.UpdatedOriginal != nil {
		invEvent.Add = []model.InventorySlot{*txn.UpdatedOriginal}
	}
	invEvent.Modified = append(invEvent.Modified, txn.ModifiedSlots...)
	p.appendNPCInventoryEvent(npc.ID, invEvent)

	p.movePosition(npc.ID, node.Pos)
	p.requeue(npc.ID, pickupTime)
	return nil
}
