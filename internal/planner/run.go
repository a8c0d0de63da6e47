package planner

import (
	"context"
	"sort"

	"cellforge/logging"
	plannerlog "cellforge/logging/planner"
)

// tickMS is the coarse re-scan step taken when no NPC is ready to act.
const tickMS = 1000

// Run executes the planning loop until simClock reaches the horizon or the
// cell lock's pause date is hit.
func (p *Planner) Run() error {
	for p.simClock < p.horizon && !p.halted {
		if p.cellLock.HasPause && p.now() >= p.cellLock.PauseDate {
			p.halted = true
			plannerlog.CellLockPaused(context.Background(), p.publisher, 0, logging.EntityRef{Kind: logging.EntityKindWorld}, plannerlog.CellLockPausedPayload{PauseDate: p.cellLock.PauseDate})
			break
		}

		id, ok := p.earliestReadyNPC()
		if !ok {
			p.simClock += tickMS
			continue
		}

		if err := p.dispatch(id); err != nil {
			return err
		}
	}
	if !p.halted {
		plannerlog.RunCompleted(context.Background(), p.publisher, 0, logging.EntityRef{Kind: logging.EntityKindWorld}, plannerlog.RunCompletedPayload{HorizonMS: p.horizon})
	}
	return nil
}

// earliestReadyNPC returns the id of the NPC with the smallest readyTime
// that has already arrived, breaking ties by id.
func (p *Planner) earliestReadyNPC() (string, bool) {
	ids := append([]string(nil), p.npcOrder...)
	sort.Slice(ids, func(i, j int) bool {
		a, b := p.npcs[ids[i]], p.npcs[ids[j]]
		if a.ReadyTime != b.ReadyTime {
			return a.ReadyTime < b.ReadyTime
		}
		return a.ID < b.ID
	})
	for _, id := range ids {
		if p.npcs[id].ReadyTime <= p.now() {
			return id, true
		}
	}
	return "", false
}
