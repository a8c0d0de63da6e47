package planner

import (
	"context"

	"cellforge/internal/model"
	"cellforge/internal/schedule"
	"cellforge/logging"
	plannerlog "cellforge/logging/planner"
)

// dispatch runs one job action for npcID and requeues it with a new
// readyTime.
func (p *Planner) dispatch(npcID string) error {
	npc := p.npcs[npcID]

	plannerlog.JobDispatched(context.Background(), p.publisher, 0, logging.EntityRef{ID: npc.ID, Kind: logging.EntityKindNPC}, plannerlog.JobDispatchedPayload{
		NPCID: npc.ID,
		Job:   string(npc.Job.Kind),
		AtMS:  p.now(),
	})

	if (npc.Job.Kind == model.JobGather || npc.Job.Kind == model.JobCraft) && npc.ActiveWindow != nil {
		if !npc.ActiveWindow.Contains(schedule.DayTime(p.now())) {
			return p.dispatchOutsideWindow(npc)
		}
	}

	switch npc.Job.Kind {
	case model.JobGather:
		return p.dispatchGather(npc)
	case model.JobCraft:
		return p.dispatchCraft(npc)
	case model.JobHaul:
		return p.dispatchIdle(npc)
	default:
		return p.dispatchIdle(npc)
	}
}

// dispatchOutsideWindow re-scans in small ticks until the NPC's active
// window opens again, rather than idling home mid-shift.
func (p *Planner) dispatchOutsideWindow(npc model.NPC) error {
	p.requeue(npc.ID, p.now()+tickMS)
	return nil
}

// dispatchIdle walks the NPC home and marks it ready on arrival. It is
// also the fallback for Haul, which this core declares but does not
// further specify.
func (p *Planner) dispatchIdle(npc model.NPC) error {
	home, ok := p.homeOf(npc.ID)
	if !ok {
		p.requeue(npc.ID, p.now()+tickMS)
		return nil
	}
	leg := walkTo(npc.Pos, home.Pos, p.now())
	p.appendPath(npc.ID, leg.points)
	p.movePosition(npc.ID, home.Pos)
	p.requeue(npc.ID, leg.arrival)
	return nil
}
