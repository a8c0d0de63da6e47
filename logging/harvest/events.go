package harvest

import (
	"context"

	"cellforge/logging"
)

const (
	// EventNodeDepleted is emitted when a resource node is harvested to depletion.
	EventNodeDepleted logging.EventType = "harvest.node_depleted"
	// EventNodeRespawned is emitted when a depleted node becomes ready again.
	EventNodeRespawned logging.EventType = "harvest.node_respawned"
	// EventItemSpawned is emitted when a harvest produces a loose item.
	EventItemSpawned logging.EventType = "harvest.item_spawned"
	// EventSpawnTableMalformed is emitted when a node's spawn table has no probability mass.
	EventSpawnTableMalformed logging.EventType = "harvest.spawn_table_malformed"
)

// NodeDepletedPayload describes a node transitioning to depleted.
type NodeDepletedPayload struct {
	NodeID      string `json:"nodeId"`
	RespawnTime int64  `json:"respawnTime"`
}

// NodeRespawnedPayload describes a node becoming ready again.
type NodeRespawnedPayload struct {
	NodeID string `json:"nodeId"`
}

// ItemSpawnedPayload describes a harvested item's creation.
type ItemSpawnedPayload struct {
	NodeID     string `json:"nodeId"`
	ItemID     string `json:"itemId"`
	ObjectType string `json:"objectType"`
}

// SpawnTableMalformedPayload describes a spawn table rejected for lacking probability mass.
type SpawnTableMalformedPayload struct {
	NodeID string `json:"nodeId"`
}

func NodeDepleted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload NodeDepletedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventNodeDepleted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryHarvest,
		Payload:  payload,
	})
}

func NodeRespawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload NodeRespawnedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventNodeRespawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryHarvest,
		Payload:  payload,
	})
}

func ItemSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemSpawnedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventItemSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryHarvest,
		Payload:  payload,
	})
}

func SpawnTableMalformed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SpawnTableMalformedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSpawnTableMalformed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityError,
		Category: logging.CategoryHarvest,
		Payload:  payload,
	})
}
