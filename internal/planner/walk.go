package planner

import "cellforge/internal/model"

// WaitAfterWalk is the pause an NPC takes on arrival before acting.
const WaitAfterWalk = 2000

// WaitAfterPickup is the pause an NPC takes after picking an item up.
const WaitAfterPickup = 2000

// msPerPixel is the walking speed: 10ms of travel time per pixel of
// Manhattan distance.
const msPerPixel = 10

// walkLeg is a single two-point leg of a Manhattan walk.
type walkLeg struct {
	points  []model.PathPoint
	arrival int64
}

// walkTo builds the vertical-then-horizontal path from from to to,
// starting at departAt, and reports the arrival time.
func walkTo(from, to model.Vec2, departAt int64) walkLeg {
	var points []model.PathPoint
	t := departAt

	if from.Y != to.Y {
		dy := to.Y - from.Y
		if dy < 0 {
			dy = -dy
		}
		t += dy * msPerPixel
		points = append(points, model.PathPoint{Time: t, Pos: model.Vec2{X: from.X, Y: to.Y}})
	}
	if from.X != to.X {
		dx := to.X - from.X
		if dx < 0 {
			dx = -dx
		}
		t += dx * msPerPixel
		points = append(points, model.PathPoint{Time: t, Pos: model.Vec2{X: to.X, Y: to.Y}})
	}
	if len(points) == 0 {
		points = append(points, model.PathPoint{Time: departAt, Pos: to})
	}
	return walkLeg{points: points, arrival: t}
}
