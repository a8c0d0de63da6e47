// Package planner implements the Cell Planner: an event-driven simulator
// that maintains a priority queue of NPC-ready events and, for each ready
// NPC, dispatches a job action, appending timestamped path, object-state,
// resource-state and inventory-state events until a horizon or cell-lock
// pause date is reached.
package planner

import (
	"cellforge/internal/harvest"
	"cellforge/internal/model"
	"cellforge/logging"
)

// Input is the pre-interpolated starting snapshot a Planner run consumes:
// every position and inventory already reflects wall-clock time at
// startTime.
type Input struct {
	NPCs       []model.NPC          `json:"npcs"`
	Nodes      []model.ResourceNode `json:"nodes"`
	Houses     []model.House        `json:"houses"`
	Objects    []model.NetworkObject `json:"objects"`
	Stockpiles []model.Stockpile    `json:"stockpiles"`
	CellLock   model.CellLock       `json:"cellLock"`
}

// Output is the NPCs, nodes, objects and stockpiles of Input, with
// timelines appended; houses and the cell lock are not echoed back.
type Output struct {
	NPCs       []model.NPC          `json:"npcs"`
	Nodes      []model.ResourceNode `json:"nodes"`
	Objects    []model.NetworkObject `json:"objects"`
	Stockpiles []model.Stockpile    `json:"stockpiles"`
}

type accumulated struct {
	npcPath        map[string][]model.PathPoint
	npcInventory   map[string][]model.InventoryStateEvent
	objectState    map[string][]model.StateEvent
	nodeState      map[string][]model.StateEvent
	stockpileInv   map[string][]model.InventoryStateEvent
}

func newAccumulated() *accumulated {
	return &accumulated{
		npcPath:      map[string][]model.PathPoint{},
		npcInventory: map[string][]model.InventoryStateEvent{},
		objectState:  map[string][]model.StateEvent{},
		nodeState:    map[string][]model.StateEvent{},
		stockpileInv: map[string][]model.InventoryStateEvent{},
	}
}

// Planner runs one deterministic planning pass over a single cell.
type Planner struct {
	startTime int64
	horizon   int64
	simClock  int64
	cellLock  model.CellLock
	halted    bool

	npcs       map[string]model.NPC
	npcOrder   []string
	nodes      map[string]model.ResourceNode
	houses     []model.House
	objects    map[string]model.NetworkObject
	spawnedIDs map[string]bool
	stockpiles map[string]model.Stockpile
	harvesters map[string]*harvest.Node

	publisher logging.Publisher
	acc       *accumulated
}

// WithPublisher attaches an event publisher used for job-dispatch and
// pause/completion notices. A nil publisher (the default) is a silent no-op.
func (p *Planner) WithPublisher(pub logging.Publisher) *Planner {
	p.publisher = pub
	return p
}

// New constructs a Planner from a pre-interpolated input snapshot.
func New(in Input, startTime, horizonMS int64) *Planner {
	p := &Planner{
		startTime:  startTime,
		horizon:    horizonMS,
		cellLock:   in.CellLock,
		npcs:       make(map[string]model.NPC, len(in.NPCs)),
		nodes:      make(map[string]model.ResourceNode, len(in.Nodes)),
		objects:    make(map[string]model.NetworkObject, len(in.Objects)),
		spawnedIDs: map[string]bool{},
		stockpiles: make(map[string]model.Stockpile, len(in.Stockpiles)),
		harvesters: map[string]*harvest.Node{},
		houses:     append([]model.House(nil), in.Houses...),
		acc:        newAccumulated(),
	}
	for _, n := range in.NPCs {
		p.npcs[n.ID] = n
		p.npcOrder = append(p.npcOrder, n.ID)
	}
	for _, n := range in.Nodes {
		p.nodes[n.ID] = n
	}
	for _, o := range in.Objects {
		p.objects[o.ID] = o
	}
	for _, s := range in.Stockpiles {
		p.stockpiles[s.ID] = s
	}
	return p
}

func (p *Planner) now() int64 {
	return p.startTime + p.simClock
}
