// Package harvest implements the per-resource-node spawner: given a node's
// saved RNG state and spawn table, it draws the next harvested item,
// jitters its position, mints an id, and schedules a respawn delay.
package harvest

import (
	"math"

	"cellforge/internal/model"
	"cellforge/internal/rng"
)

// cumulativeEntry is one row of the precomputed selection table: remaining
// is the probability mass strictly after this entry in the node's original
// spawns order, so the table is monotonically decreasing from just under
// the total mass down to zero for the last entry.
type cumulativeEntry struct {
	spawn     model.ResourceNodeSpawn
	remaining float64
}

// Table is the precomputed, reversed cumulative-probability table built
// once from a node's spawns array.
type Table struct {
	entries []cumulativeEntry
	total   float64
}

// BuildTable filters out zero-probability entries (they are structurally
// unselectable, never a comparison accident) and fails with
// ErrMalformedSpawnTable if no mass remains.
func BuildTable(spawns []model.ResourceNodeSpawn) (Table, error) {
	filtered := make([]model.ResourceNodeSpawn, 0, len(spawns))
	for _, s := range spawns {
		if s.Probability > 0 {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return Table{}, ErrMalformedSpawnTable
	}

	entries := make([]cumulativeEntry, len(filtered))
	var running float64
	for i := len(filtered) - 1; i >= 0; i-- {
		entries[i] = cumulativeEntry{spawn: filtered[i], remaining: running}
		running += filtered[i].Probability
	}
	total := running
	if total <= 0 {
		return Table{}, ErrMalformedSpawnTable
	}
	return Table{entries: entries, total: total}, nil
}

// Select draws one entry: the first (in original order) whose remaining
// mass (the mass strictly after it) is less than the scaled draw, which
// means the draw landed inside that entry's own slice. The table's
// remaining values decrease monotonically, so this is a single monotone
// walk.
func (t Table) Select(stream *rng.Stream) model.ResourceNodeSpawn {
	draw := stream.Float64() * t.total
	for _, e := range t.entries {
		if e.remaining < draw {
			return e.spawn
		}
	}
	return t.entries[len(t.entries)-1].spawn
}

// Spawn is one harvested item draw.
type Spawn struct {
	ItemID        string
	ObjectType    string
	Jitter        model.Vec2
	RespawnDelay  int64
	SpawnTimeBase int64
}

// Node wraps a resumable RNG stream and precomputed table for one resource
// node, mirroring the persisted state a ResourceNode carries between runs.
type Node struct {
	stream *rng.Stream
	table  Table
}

// NewNode constructs a spawner from a node's saved RNG snapshot and spawn
// table.
func NewNode(snapshot rng.Snapshot, spawns []model.ResourceNodeSpawn) (*Node, error) {
	table, err := BuildTable(spawns)
	if err != nil {
		return nil, err
	}
	return &Node{stream: rng.FromSnapshot(snapshot), table: table}, nil
}

// Spawn draws the next item: selects a type by weighted roll, jitters its
// position by +/-100px on each axis, mints an id from a 32-bit draw, and
// computes a respawn delay uniform in [0.5x, 1.5x) of the type's base spawn
// time.
func (n *Node) Spawn() Spawn {
	selected := n.table.Select(n.stream)

	jitterX := int64(math.Floor(n.stream.Float64()*200)) - 100
	jitterY := int64(math.Floor(n.stream.Float64()*200)) - 100

	itemID := n.stream.NextID("object")

	respawnDelay := int64(math.Ceil(n.stream.Float64()*float64(selected.SpawnTimeMS) + float64(selected.SpawnTimeMS)*0.5))

	return Spawn{
		ItemID:        itemID,
		ObjectType:    selected.Type,
		Jitter:        model.Vec2{X: jitterX, Y: jitterY},
		RespawnDelay:  respawnDelay,
		SpawnTimeBase: selected.SpawnTimeMS,
	}
}

// SaveState returns an opaque, serializable snapshot of the node's RNG
// position for persistence between planning runs.
func (n *Node) SaveState() rng.Snapshot {
	return n.stream.Snapshot()
}
