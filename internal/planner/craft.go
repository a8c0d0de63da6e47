package planner

import (
	"context"

	"cellforge/internal/catalog"
	"cellforge/internal/inventory"
	"cellforge/internal/model"
	"cellforge/internal/rng"
	"cellforge/logging"
	inventorylog "cellforge/logging/inventory"
)

// dispatchCraft deposits any carried items first, otherwise picks a random
// product from the NPC's job, withdraws its inputs from the nearest
// sufficiently stocked stockpile, walks home, and crafts as many batches
// as fit in the inventory and the stockpile's stock.
func (p *Planner) dispatchCraft(npc model.NPC) error {
	if len(npc.Inventory.Slots) > 0 {
		return p.deposit(npc)
	}
	if len(npc.Job.Products) == 0 {
		return p.dispatchIdle(npc)
	}

	craftStream := rng.FromSnapshot(npc.CraftingRNG)
	product := npc.Job.Products[craftStream.IntRange(len(npc.Job.Products))]
	recipe, err := catalog.RecipeFor(catalog.ObjectType(product))
	if err != nil {
		return p.dispatchIdle(npc)
	}

	numRecipes, stockpileID, ok := p.planCraftBatch(npc, recipe)
	if !ok {
		return p.dispatchIdle(npc)
	}
	stockpile := p.stockpiles[stockpileID]

	toStockpile := walkTo(npc.Pos, stockpile.Pos, p.now())
	p.appendPath(npc.ID, toStockpile.points)
	withdrawAt := toStockpile.arrival

	workingNPCInv := npc.Inventory
	workingStockInv := stockpile.Inventory
	for _, req := range recipe.Items {
		needed := int64(req.Quantity) * numRecipes
		limit, _ := catalog.StackLimit(req.Item)
		for needed > 0 {
			slotID, avail := findSlotByType(workingStockInv, string(req.Item))
			if slotID == "" {
				return p.dispatchIdle(npc)
			}
			take := minInt64(needed, avail, int64(limit))
			nextStock, withdrawn, wtxn, err := inventory.WithdrawFromStockpile(workingStockInv, slotID, take, withdrawAt)
			if err != nil {
				return p.dispatchIdle(npc)
			}
			workingStockInv = nextStock
			p.appendStockpileInvEventFromTxn(stockpileID, withdrawAt, wtxn)
			inventorylog.StockpileTransfer(context.Background(), p.publisher, 0, logging.EntityRef{ID: npc.ID, Kind: logging.EntityKindNPC}, inventorylog.StockpileTransferPayload{
				StockpileID: stockpileID,
				ObjectType:  string(req.Item),
				Amount:      take,
				Direction:   "withdraw",
			}, logging.EntityRef{ID: stockpileID, Kind: logging.EntityKindStockpile})

			nextNPCInv, ptxn, err := inventory.PickUp(workingNPCInv, withdrawn, inventory.HolderRef{Kind: inventory.HolderNPC, ID: npc.ID}, withdrawAt)
			if err != nil {
				return p.dispatchIdle(npc)
			}
			workingNPCInv = nextNPCInv
			p.appendNPCInvEventFromTxn(npc.ID, withdrawAt, ptxn)

			needed -= take
		}
	}
	p.setStockpileInventory(stockpileID, workingStockInv)
	p.setNPCInventory(npc.ID, workingNPCInv)
	p.movePosition(npc.ID, stockpile.Pos)

	home, hasHome := p.homeOf(npc.ID)
	craftPos := stockpile.Pos
	craftAt := withdrawAt
	if hasHome {
		leg := walkTo(stockpile.Pos, home.Pos, withdrawAt)
		p.appendPath(npc.ID, leg.points)
		craftPos = home.Pos
		craftAt = leg.arrival
	}

	npcRef := logging.EntityRef{ID: npc.ID, Kind: logging.EntityKindNPC}
	for i := int64(0); i < numRecipes; i++ {
		nextInv, ctxn, err := inventory.Craft(workingNPCInv, recipe, craftStream, inventory.HolderRef{Kind: inventory.HolderNPC, ID: npc.ID}, craftAt)
		if err != nil {
			inventorylog.CraftFailed(context.Background(), p.publisher, 0, npcRef, inventorylog.CraftFailedPayload{Product: string(recipe.Product), Reason: err.Error()})
			break
		}
		workingNPCInv = nextInv
		p.appendNPCInvEventFromTxn(npc.ID, craftAt, ctxn)
		if ctxn.UpdatedOriginal != nil {
			p.recordSpawnedInventoryItem(*ctxn.UpdatedOriginal, craftPos, craftAt)
			inventorylog.CraftSucceeded(context.Background(), p.publisher, 0, npcRef, inventorylog.CraftSucceededPayload{
				Product:  string(recipe.Product),
				Amount:   int64(recipe.Amount),
				OutputID: ctxn.UpdatedOriginal.ID,
			})
		}
	}
	p.setNPCInventory(npc.ID, workingNPCInv)
	p.movePosition(npc.ID, craftPos)

	npc2 := npc
	npc2.CraftingRNG = craftStream.Snapshot()
	p.npcs[npc.ID] = npc2
	p.requeue(npc.ID, craftAt)
	return nil
}

// planCraftBatch picks the largest batch size (bounded by inventory free
// space for the product) for which some stockpile holds enough inputs.
func (p *Planner) planCraftBatch(npc model.NPC, recipe catalog.Recipe) (numRecipes int64, stockpileID string, ok bool) {
	freeSlots := int64(npc.Inventory.Capacity() - len(npc.Inventory.Slots))
	outputLimit, _ := catalog.StackLimit(recipe.Product)
	maxByOutput := freeSlots * int64(outputLimit) / int64(recipe.Amount)
	if maxByOutput < 1 {
		maxByOutput = 1
	}

	for n := maxByOutput; n >= 1; n-- {
		required := map[string]int64{}
		for _, item := range recipe.Items {
			required[string(item.Item)] = int64(item.Quantity) * n
		}
		if id, found := p.nearestStockpileWithMaterials(npc.Pos, required); found {
			return n, id, true
		}
	}
	return 0, "", false
}

func (p *Planner) recordSpawnedInventoryItem(item model.NetworkObject, pos model.Vec2, at int64) {
	item.Reposition(pos, at)
	existTrue := true
	p.appendObjectState(item.ID, model.StateEvent{Time: at, Patch: model.Patch{Exist: &existTrue}})
	item.Exist = true
	p.spawnedIDs[item.ID] = true
	p.putObject(item)
}

func (p *Planner) appendStockpileInvEventFromTxn(stockpileID string, at int64, txn inventory.Transaction) {
	ev := model.InventoryStateEvent{Time: at, Remove: txn.DeletedIDs, Modified: txn.ModifiedSlots}
	if txn.UpdatedOriginal != nil {
		ev.Add = []model.InventorySlot{*txn.UpdatedOriginal}
	}
	p.appendStockpileInventoryEvent(stockpileID, ev)
}

func (p *Planner) appendNPCInvEventFromTxn(npcID string, at int64, txn inventory.Transaction) {
	ev := model.InventoryStateEvent{Time: at, Remove: txn.DeletedIDs, Modified: txn.ModifiedSlots}
	if txn.UpdatedOriginal != nil {
		ev.Add = []model.InventorySlot{*txn.UpdatedOriginal}
	}
	p.appendNPCInventoryEvent(npcID, ev)
}

func findSlotByType(inv model.Inventory, objectType string) (slotID string, amount int64) {
	for _, slot := range inv.Slots {
		if slot.ObjectType == objectType {
			return slot.ID, slot.Amount
		}
	}
	return "", 0
}

func minInt64(values ...int64) int64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
