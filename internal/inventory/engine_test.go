package inventory

import (
	"errors"
	"strconv"
	"testing"

	"cellforge/internal/catalog"
	"cellforge/internal/model"
	"cellforge/internal/rng"
)

func stick(id string, amount int64) model.NetworkObject {
	return model.NetworkObject{
		PositionedObject: model.PositionedObject{ID: id},
		ObjectType:       string(catalog.TypeStick),
		Amount:           amount,
		Exist:            true,
	}
}

func emptyInventory() model.Inventory {
	return model.Inventory{Rows: 1, Columns: 10}
}

func TestCraftWattleTwentySticks(t *testing.T) {
	inv := emptyInventory()
	holder := HolderRef{Kind: HolderPerson, ID: "person-1"}

	for i := 0; i < 20; i++ {
		next, _, err := PickUp(inv, stick(idFor(i), 1), holder, int64(i))
		if err != nil {
			t.Fatalf("pickUp %d: %v", i, err)
		}
		inv = next
	}

	if len(inv.Slots) != 2 {
		t.Fatalf("expected 2 stick slots after 20 pickups, got %d", len(inv.Slots))
	}
	for _, slot := range inv.Slots {
		if slot.Amount != 10 {
			t.Fatalf("expected each stack at 10, got %d", slot.Amount)
		}
	}

	recipe, err := catalog.RecipeFor(catalog.TypeWattleWall)
	if err != nil {
		t.Fatalf("RecipeFor: %v", err)
	}
	stream := rng.New("craft-stream-1")
	before := stream.Snapshot()

	final, _, err := Craft(inv, recipe, stream, holder, 1000)
	if err != nil {
		t.Fatalf("Craft: %v", err)
	}

	var sticks, walls int
	for _, slot := range final.Slots {
		switch slot.ObjectType {
		case string(catalog.TypeStick):
			sticks++
		case string(catalog.TypeWattleWall):
			walls++
			if slot.Amount != 1 {
				t.Fatalf("expected wattle wall amount 1, got %d", slot.Amount)
			}
		}
	}
	if sticks != 1 || walls != 1 {
		t.Fatalf("expected 1 stick slot + 1 wattle wall slot, got sticks=%d walls=%d", sticks, walls)
	}
	if stream.Snapshot() == before {
		t.Fatalf("expected crafting RNG to advance on success")
	}
}

func TestPickUp101stStickFails(t *testing.T) {
	inv := emptyInventory()
	holder := HolderRef{Kind: HolderNPC, ID: "npc-1"}

	var err error
	for i := 0; i < 100; i++ {
		inv, _, err = PickUp(inv, stick(idFor(i), 1), holder, int64(i))
		if err != nil {
			t.Fatalf("pickUp %d: %v", i, err)
		}
	}

	_, _, err = PickUp(inv, stick(idFor(100), 1), holder, 100)
	if !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("expected ErrInventoryFull, got %v", err)
	}
}

func TestFailedCraftLeavesInventoryUntouched(t *testing.T) {
	inv := emptyInventory()
	holder := HolderRef{Kind: HolderPerson, ID: "person-1"}

	for i := 0; i < 9; i++ {
		next, _, err := PickUp(inv, stick(idFor(i), 1), holder, int64(i))
		if err != nil {
			t.Fatalf("pickUp %d: %v", i, err)
		}
		inv = next
	}

	recipe, err := catalog.RecipeFor(catalog.TypeWattleWall)
	if err != nil {
		t.Fatalf("RecipeFor: %v", err)
	}
	stream := rng.New("craft-stream-2")
	before := stream.Snapshot()

	_, _, err = Craft(inv, recipe, stream, holder, 1000)
	if !errors.Is(err, ErrInsufficientMaterials) {
		t.Fatalf("expected ErrInsufficientMaterials, got %v", err)
	}
	if stream.Snapshot() != before {
		t.Fatalf("expected RNG to be untouched on failed craft")
	}
	if len(inv.Slots) != 1 || inv.Slots[0].Amount != 9 {
		t.Fatalf("expected inventory untouched (1 slot, amount 9), got %+v", inv.Slots)
	}
}

func TestDropNeverFails(t *testing.T) {
	inv := emptyInventory()
	holder := HolderRef{Kind: HolderNPC, ID: "npc-1"}
	inv, _, err := PickUp(inv, stick("stick-0", 5), holder, 0)
	if err != nil {
		t.Fatalf("pickUp: %v", err)
	}

	next, dropped, _, err := Drop(inv, "stick-0", 10)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if len(next.Slots) != 0 {
		t.Fatalf("expected empty inventory after drop")
	}
	if dropped.Ownership.HolderCount() != 0 || dropped.Ownership.IsInInventory {
		t.Fatalf("expected dropped item to have no ownership, got %+v", dropped.Ownership)
	}

	if _, _, _, err := Drop(inv, "missing-slot", 10); err != nil {
		t.Fatalf("Drop of missing slot must never fail, got %v", err)
	}
}

func TestWithdrawFromStockpileSymmetry(t *testing.T) {
	inv := emptyInventory()
	inv, _, err := DepositIntoStockpile(inv, stick("stick-0", 10), "stockpile-1", 0)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	next, withdrawn, _, err := WithdrawFromStockpile(inv, "stick-0", 4, 5)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if withdrawn.Amount != 4 || withdrawn.Ownership.InsideStockpile != "" {
		t.Fatalf("unexpected withdrawn item: %+v", withdrawn)
	}
	if len(next.Slots) != 1 || next.Slots[0].Amount != 6 {
		t.Fatalf("expected remaining slot amount 6, got %+v", next.Slots)
	}

	_, _, _, err = WithdrawFromStockpile(next, "stick-0", 100, 6)
	if !errors.Is(err, ErrInsufficientMaterials) {
		t.Fatalf("expected ErrInsufficientMaterials, got %v", err)
	}
}

func totalAmount(inv model.Inventory) int64 {
	var total int64
	for _, slot := range inv.Slots {
		total += slot.Amount
	}
	return total
}

func TestPickUpDropRoundTripConservesAmount(t *testing.T) {
	inv := emptyInventory()
	holder := HolderRef{Kind: HolderNPC, ID: "npc-1"}

	inv, _, err := PickUp(inv, stick("stick-0", 7), holder, 0)
	if err != nil {
		t.Fatalf("pickUp: %v", err)
	}
	beforeDrop := totalAmount(inv)

	next, dropped, _, err := Drop(inv, "stick-0", 10)
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if got := totalAmount(next) + dropped.Amount; got != beforeDrop {
		t.Fatalf("amount not conserved across pickup/drop: before=%d after=%d (loose=%d)", beforeDrop, totalAmount(next), dropped.Amount)
	}

	backInv, _, err := PickUp(next, dropped, holder, 20)
	if err != nil {
		t.Fatalf("pickUp (re-pick dropped item): %v", err)
	}
	if got := totalAmount(backInv); got != beforeDrop {
		t.Fatalf("amount not conserved picking the dropped item back up: got %d want %d", got, beforeDrop)
	}
}

func TestDepositWithdrawRoundTripConservesAmount(t *testing.T) {
	inv := emptyInventory()
	inv, _, err := DepositIntoStockpile(inv, stick("stick-0", 10), "stockpile-1", 0)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	before := totalAmount(inv)

	next, withdrawn, _, err := WithdrawFromStockpile(inv, "stick-0", 4, 5)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if got := totalAmount(next) + withdrawn.Amount; got != before {
		t.Fatalf("amount not conserved across deposit/withdraw: before=%d remaining=%d withdrawn=%d", before, totalAmount(next), withdrawn.Amount)
	}

	restored, _, err := DepositIntoStockpile(next, withdrawn, "stockpile-1", 10)
	if err != nil {
		t.Fatalf("deposit (return withdrawn amount): %v", err)
	}
	if got := totalAmount(restored); got != before {
		t.Fatalf("amount not conserved after depositing the withdrawn amount back: got %d want %d", got, before)
	}
}

func TestCraftConservesInputOutputBalance(t *testing.T) {
	inv := emptyInventory()
	holder := HolderRef{Kind: HolderPerson, ID: "person-1"}

	for i := 0; i < 10; i++ {
		next, _, err := PickUp(inv, stick(idFor(i), 1), holder, int64(i))
		if err != nil {
			t.Fatalf("pickUp %d: %v", i, err)
		}
		inv = next
	}
	inputAmount := totalAmount(inv)

	recipe, err := catalog.RecipeFor(catalog.TypeWattleWall)
	if err != nil {
		t.Fatalf("RecipeFor: %v", err)
	}
	stream := rng.New("craft-conservation")

	final, _, err := Craft(inv, recipe, stream, holder, 1000)
	if err != nil {
		t.Fatalf("Craft: %v", err)
	}

	var consumed, produced int64
	for _, item := range recipe.Items {
		consumed += int64(item.Quantity)
	}
	produced = int64(recipe.Amount)

	if got := inputAmount - totalAmount(final); got != consumed-produced {
		t.Fatalf("input/output imbalance: consumed %d, produced %d, but net inventory drop was %d", consumed, produced, got)
	}
}

func idFor(i int) string {
	return "stick-" + strconv.Itoa(i)
}
