package inventory

import (
	"context"

	"cellforge/logging"
)

const (
	// EventPickUpFailed is emitted when a pickup fails, usually for lack of room.
	EventPickUpFailed logging.EventType = "inventory.pick_up_failed"
	// EventCraftFailed is emitted when a craft attempt fails and rolls back.
	EventCraftFailed logging.EventType = "inventory.craft_failed"
	// EventCraftSucceeded is emitted when a craft produces its output.
	EventCraftSucceeded logging.EventType = "inventory.craft_succeeded"
	// EventStockpileTransfer is emitted for a withdraw or deposit against a stockpile.
	EventStockpileTransfer logging.EventType = "inventory.stockpile_transfer"
)

// PickUpFailedPayload describes a rejected pickup.
type PickUpFailedPayload struct {
	ObjectType string `json:"objectType"`
	Reason     string `json:"reason"`
}

// CraftFailedPayload describes a rejected craft attempt.
type CraftFailedPayload struct {
	Product string `json:"product"`
	Reason  string `json:"reason"`
}

// CraftSucceededPayload describes a completed craft.
type CraftSucceededPayload struct {
	Product  string `json:"product"`
	Amount   int64  `json:"amount"`
	OutputID string `json:"outputId"`
}

// StockpileTransferPayload describes a withdraw or deposit.
type StockpileTransferPayload struct {
	StockpileID string `json:"stockpileId"`
	ObjectType  string `json:"objectType"`
	Amount      int64  `json:"amount"`
	Direction   string `json:"direction"`
}

func PickUpFailed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PickUpFailedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPickUpFailed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryInventory,
		Payload:  payload,
	})
}

func CraftFailed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CraftFailedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCraftFailed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryInventory,
		Payload:  payload,
	})
}

func CraftSucceeded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CraftSucceededPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCraftSucceeded,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryInventory,
		Payload:  payload,
	})
}

func StockpileTransfer(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload StockpileTransferPayload, targets ...logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventStockpileTransfer,
		Tick:     tick,
		Actor:    actor,
		Targets:  targets,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryInventory,
		Payload:  payload,
	})
}
