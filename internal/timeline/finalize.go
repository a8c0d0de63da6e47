package timeline

import (
	"errors"

	"cellforge/internal/model"
)

// ErrSpawnObjectEmptyState is returned when a freshly spawned object's
// finalized state timeline is empty; every spawn must carry at least one
// exist=true event.
var ErrSpawnObjectEmptyState = errors.New("timeline: spawned object has no state events")

// SplicePath keeps only the original path points at or after startTime,
// then appends the newly scheduled points generated during this run.
func SplicePath(original []model.PathPoint, startTime int64, appended []model.PathPoint) []model.PathPoint {
	out := make([]model.PathPoint, 0, len(original)+len(appended))
	for _, p := range original {
		if p.Time >= startTime {
			out = append(out, p)
		}
	}
	return append(out, appended...)
}

// FinalizeObjectState prunes entries at or before startTime, then appends
// the events generated this run. An object with exist=false and no
// resulting state is garbage and FinalizeObjectState reports ok=false so
// the caller can drop it from the output entirely.
func FinalizeObjectState(existNow bool, startTime int64, existing []model.StateEvent, appended []model.StateEvent) (events []model.StateEvent, ok bool) {
	kept := model.PruneStateBefore(existing, startTime)
	events = append(append([]model.StateEvent(nil), kept...), appended...)
	if !existNow && len(events) == 0 {
		return nil, false
	}
	return events, true
}

// FinalizeSpawnedObjectState validates the freshly spawned case: the
// object must carry at least one state event (its exist=true transition),
// never the "no state" case which is always an error for a spawn.
func FinalizeSpawnedObjectState(appended []model.StateEvent) ([]model.StateEvent, error) {
	if len(appended) == 0 {
		return nil, ErrSpawnObjectEmptyState
	}
	return appended, nil
}

// FinalizeResourceState replaces a resource node's state timeline outright
// with only the events generated this run; prior-run events were already
// baked into the node's pre-interpolated snapshot.
func FinalizeResourceState(appended []model.StateEvent) []model.StateEvent {
	if len(appended) == 0 {
		return nil
	}
	return append([]model.StateEvent(nil), appended...)
}

// TruncateAtPause implements the pause-date partial-event rule: keep every
// event with Time <= pauseDate, then exactly one more event (the first
// whose Time > pauseDate), if any exists, so replay still has something
// pending. Nothing after that is kept.
func TruncateAtPause(events []model.StateEvent, pauseDate int64) []model.StateEvent {
	for i, ev := range events {
		if ev.Time > pauseDate {
			if i+1 >= len(events) {
				return events
			}
			return events[:i+1]
		}
	}
	return events
}
