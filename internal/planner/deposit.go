package planner

import (
	"context"

	"cellforge/internal/inventory"
	"cellforge/internal/model"
	"cellforge/logging"
	invlog "cellforge/logging/inventory"
)

// deposit walks npc to the nearest stockpile with free capacity and drops
// its inventory into it one slot at a time, until either the NPC is empty
// or the stockpile fills. Every drop/deposit pair is timestamped at the
// walk's arrival time.
func (p *Planner) deposit(npc model.NPC) error {
	stockpileID, ok := p.nearestStockpileWithCapacity(npc.Pos)
	if !ok {
		return p.dispatchIdle(npc)
	}
	stockpile := p.stockpiles[stockpileID]

	leg := walkTo(npc.Pos, stockpile.Pos, p.now())
	p.appendPath(npc.ID, leg.points)
	at := leg.arrival

	workingNPCInv := npc.Inventory
	workingStockInv := stockpile.Inventory
	for len(workingNPCInv.Slots) > 0 && len(workingStockInv.Slots) < workingStockInv.Capacity() {
		slotID := workingNPCInv.Slots[0].ID

		nextNPCInv, dropped, dtxn, err := inventory.Drop(workingNPCInv, slotID, at)
		if err != nil {
			return err
		}
		workingNPCInv = nextNPCInv
		p.appendNPCInvEventFromTxn(npc.ID, at, dtxn)

		isInInventory := false
		p.appendObjectState(slotID, model.StateEvent{Time: at, Patch: model.Patch{IsInInventory: &isInInventory, GrabbedByNPCID: strPtr("")}})

		nextStockInv, ptxn, err := inventory.DepositIntoStockpile(workingStockInv, dropped, stockpileID, at)
		if err != nil {
			return err
		}
		workingStockInv = nextStockInv
		p.appendStockpileInvEventFromTxn(stockpileID, at, ptxn)

		insideStockpile := stockpileID
		p.appendObjectState(slotID, model.StateEvent{Time: at, Patch: model.Patch{InsideStockpile: &insideStockpile}})

		invlog.StockpileTransfer(context.Background(), p.publisher, 0, logging.EntityRef{ID: npc.ID, Kind: logging.EntityKindNPC}, invlog.StockpileTransferPayload{
			StockpileID: stockpileID,
			ObjectType:  dropped.ObjectType,
			Amount:      dropped.Amount,
			Direction:   "deposit",
		}, logging.EntityRef{ID: stockpileID, Kind: logging.EntityKindStockpile})
	}

	p.setNPCInventory(npc.ID, workingNPCInv)
	p.setStockpileInventory(stockpileID, workingStockInv)
	p.movePosition(npc.ID, stockpile.Pos)
	p.requeue(npc.ID, at)
	return nil
}

func strPtr(s string) *string { return &s }
