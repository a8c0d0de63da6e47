package planner

import (
	"context"

	"cellforge/logging"
)

const (
	// EventJobDispatched is emitted each time the planner dispatches an NPC's job.
	EventJobDispatched logging.EventType = "planner.job_dispatched"
	// EventCellLockPaused is emitted when a run halts on a cell lock's pause date.
	EventCellLockPaused logging.EventType = "planner.cell_lock_paused"
	// EventNoResourceReady is emitted when a gather job finds nothing ready and idles the clock forward.
	EventNoResourceReady logging.EventType = "planner.no_resource_ready"
	// EventRunCompleted is emitted once a horizon finishes without a pause halt.
	EventRunCompleted logging.EventType = "planner.run_completed"
)

// JobDispatchedPayload describes a single dispatch decision.
type JobDispatchedPayload struct {
	NPCID string `json:"npcId"`
	Job   string `json:"job"`
	AtMS  int64  `json:"atMs"`
}

// CellLockPausedPayload describes a run halting on a pause date.
type CellLockPausedPayload struct {
	PauseDate int64 `json:"pauseDate"`
}

// NoResourceReadyPayload describes an idle gather scan.
type NoResourceReadyPayload struct {
	NPCID string `json:"npcId"`
	AtMS  int64  `json:"atMs"`
}

// RunCompletedPayload describes a completed horizon.
type RunCompletedPayload struct {
	HorizonMS int64 `json:"horizonMs"`
}

func JobDispatched(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload JobDispatchedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventJobDispatched,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryPlanner,
		Payload:  payload,
	})
}

func CellLockPaused(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CellLockPausedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCellLockPaused,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryPlanner,
		Payload:  payload,
	})
}

func NoResourceReady(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload NoResourceReadyPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventNoResourceReady,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryPlanner,
		Payload:  payload,
	})
}

func RunCompleted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload RunCompletedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRunCompleted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryPlanner,
		Payload:  payload,
	})
}
