// Package inventory implements the deterministic, transactional inventory
// engine: stack-aware pickup/drop/craft/withdraw/deposit over a
// fixed-capacity, slotted inventory. Every operation takes a holder
// snapshot and returns a new snapshot plus a Transaction describing the
// minimal delta; nothing is mutated in place and a failed call leaves its
// input snapshot untouched.
package inventory

import (
	"fmt"

	"cellforge/internal/catalog"
	"cellforge/internal/model"
	"cellforge/internal/rng"
)

func mergeCapacity(inv model.Inventory, objectType string, amount int64) (target int, ok bool, capacityFull bool) {
	limit, err := catalog.StackLimit(catalog.ObjectType(objectType))
	if err != nil {
		limit = 1
	}
	for i, slot := range inv.Slots {
		if slot.ObjectType == objectType && slot.Amount+amount <= int64(limit) {
			return i, true, false
		}
	}
	return -1, false, len(inv.Slots) >= inv.Capacity()
}

// place is the shared merge-or-append core behind PickUp and
// DepositIntoStockpile: they differ only in which ownership fields they
// stamp onto a freshly appended slot.
func place(inv model.Inventory, item model.NetworkObject, setOwnership func(*model.NetworkObject), now int64) (model.Inventory, Transaction, error) {
	out := inv.Clone()

	if dupIdx := out.SlotByID(item.ID); dupIdx >= 0 {
		slot := out.Slots[dupIdx]
		slot.Amount += item.Amount
		slot.LastUpdate = now
		out.Slots[dupIdx] = slot
		return out, Transaction{StackedInto: []model.NetworkObject{slot}, ModifiedSlots: []model.NetworkObject{slot}}, nil
	}

	if idx, ok, _ := mergeCapacity(out, item.ObjectType, item.Amount); ok {
		slot := out.Slots[idx]
		slot.Amount += item.Amount
		slot.LastUpdate = now
		out.Slots[idx] = slot
		return out, Transaction{StackedInto: []model.NetworkObject{slot}, DeletedIDs: []string{item.ID}, ModifiedSlots: []model.NetworkObject{slot}}, nil
	}

	if len(out.Slots) >= out.Capacity() {
		return inv, Transaction{}, ErrInventoryFull
	}

	placed := item
	placed.LastUpdate = now
	setOwnership(&placed)
	out.Slots = append(out.Slots, placed)
	return out, Transaction{UpdatedOriginal: &placed}, nil
}

// canPlace reports whether place would succeed for objectType/amount
// without performing the placement, used by Craft to decide whether the
// crafting RNG may advance.
func canPlace(inv model.Inventory, objectType string, amount int64) bool {
	if _, ok, _ := mergeCapacity(inv, objectType, amount); ok {
		return true
	}
	return len(inv.Slots) < inv.Capacity()
}

// PickUp merges item into an existing compatible slot or appends it as a
// new slot owned by holder. Fails with ErrInventoryFull if neither is
// possible.
func PickUp(inv model.Inventory, item model.NetworkObject, holder HolderRef, now int64) (model.Inventory, Transaction, error) {
	return place(inv, item, holder.applyTo, now)
}

// AddItem is an alias for PickUp used by callers that synthesize items
// directly rather than routing through a pickup request.
func AddItem(inv model.Inventory, item model.NetworkObject, holder HolderRef, now int64) (model.Inventory, Transaction, error) {
	return PickUp(inv, item, holder, now)
}

// Drop removes a slot entirely, clearing its ownership flags, and returns
// the now-loose object alongside the updated inventory. It never fails; a
// missing slotID is a no-op.
func Drop(inv model.Inventory, slotID string, now int64) (model.Inventory, model.NetworkObject, Transaction, error) {
	out := inv.Clone()
	idx := out.SlotByID(slotID)
	if idx < 0 {
		return inv, model.NetworkObject{}, Transaction{}, nil
	}
	dropped := out.Slots[idx]
	out.Slots = append(out.Slots[:idx], out.Slots[idx+1:]...)

	dropped.Ownership.Clear()
	dropped.LastUpdate = now
	return out, dropped, Transaction{DeletedIDs: []string{slotID}}, nil
}

// RemoveByRecipeItem greedily subtracts quantity from slots matching
// objectType, in slot order. Fails with ErrInsufficientMaterials and
// leaves inv unmodified if the total available amount is short.
func RemoveByRecipeItem(inv model.Inventory, objectType string, quantity int64, now int64) (model.Inventory, Transaction, error) {
	var available int64
	for _, slot := range inv.Slots {
		if slot.ObjectType == objectType {
			available += slot.Amount
		}
	}
	if available < quantity {
		return inv, Transaction{}, ErrInsufficientMaterials
	}

	out := inv.Clone()
	remaining := quantity
	var deleted []string
	var modified []model.NetworkObject
	kept := out.Slots[:0]
	for _, slot := range out.Slots {
		if remaining > 0 && slot.ObjectType == objectType {
			take := remaining
			if take > slot.Amount {
				take = slot.Amount
			}
			slot.Amount -= take
			remaining -= take
			slot.LastUpdate = now
			if slot.Amount == 0 {
				deleted = append(deleted, slot.ID)
				continue
			}
			modified = append(modified, slot)
		}
		kept = append(kept, slot)
	}
	out.Slots = kept

	return out, Transaction{DeletedIDs: deleted, ModifiedSlots: modified}, nil
}

// Craft consumes recipe.Items from inv and places recipe.Amount of
// recipe.Product, minted with a fresh id from stream. If any input is
// short, or the product cannot be placed, inv is returned unmodified and
// stream is left un-advanced: the crafting RNG only advances on success.
func Craft(inv model.Inventory, recipe catalog.Recipe, stream *rng.Stream, holder HolderRef, now int64) (model.Inventory, Transaction, error) {
	working := inv
	var consumed []Transaction
	for _, req := range recipe.Items {
		next, txn, err := RemoveByRecipeItem(working, string(req.Item), int64(req.Quantity), now)
		if err != nil {
			return inv, Transaction{}, err
		}
		working = next
		consumed = append(consumed, txn)
	}

	if !canPlace(working, string(recipe.Product), int64(recipe.Amount)) {
		return inv, Transaction{}, fmt.Errorf("craft %s: %w", recipe.Product, ErrInventoryFull)
	}

	product := model.NetworkObject{
		PositionedObject: model.PositionedObject{ID: stream.NextID("object"), LastUpdate: now},
		ObjectType:       string(recipe.Product),
		Amount:           int64(recipe.Amount),
		Exist:            true,
	}
	final, placeTxn, err := PickUp(working, product, holder, now)
	if err != nil {
		return inv, Transaction{}, err
	}

	return final, mergeTransactions(append(consumed, placeTxn)...), nil
}

// WithdrawFromStockpile removes amount from slotID (which must belong to
// inv), clearing InsideStockpile, and returns the withdrawn item plus the
// updated inventory. Fails with ErrInsufficientMaterials if the slot holds
// less than amount.
func WithdrawFromStockpile(inv model.Inventory, slotID string, amount int64, now int64) (model.Inventory, model.NetworkObject, Transaction, error) {
	out := inv.Clone()
	idx := out.SlotByID(slotID)
	if idx < 0 || out.Slots[idx].Amount < amount {
		return inv, model.NetworkObject{}, Transaction{}, ErrInsufficientMaterials
	}

	slot := out.Slots[idx]
	withdrawn := slot
	withdrawn.Amount = amount
	withdrawn.LastUpdate = now
	withdrawn.Ownership.Clear()

	slot.Amount -= amount
	slot.LastUpdate = now
	if slot.Amount == 0 {
		out.Slots = append(out.Slots[:idx], out.Slots[idx+1:]...)
		return out, withdrawn, Transaction{DeletedIDs: []string{slotID}}, nil
	}
	out.Slots[idx] = slot
	return out, withdrawn, Transaction{ModifiedSlots: []model.NetworkObject{slot}}, nil
}

// DepositIntoStockpile merges item into stockpileID's inventory, symmetric
// to PickUp but stamping InsideStockpile instead of a grabbed-by field.
func DepositIntoStockpile(inv model.Inventory, item model.NetworkObject, stockpileID string, now int64) (model.Inventory, Transaction, error) {
	setOwnership := func(obj *model.NetworkObject) {
		obj.Ownership.Clear()
		obj.Ownership.InsideStockpile = stockpileID
	}
	return place(inv, item, setOwnership, now)
}
