package planner

import (
	"reflect"
	"testing"

	"cellforge/internal/model"
)

// buildDeterminismInput returns a moderately busy input: gather and craft
// NPCs, a resource grid, and a stockpile, so both job branches and the
// harvest RNG get exercised identically across the two runs.
func buildDeterminismInput() Input {
	stockpile := model.Stockpile{
		PositionedObject: model.PositionedObject{ID: "stockpile-1", Pos: model.Vec2{X: 1600, Y: 1600}},
		Tiles:             []model.Vec2{{X: 1600, Y: 1600}},
		Inventory:         model.Inventory{Rows: 4, Columns: 6},
	}
	craftNPC := model.NPC{
		PositionedObject: model.PositionedObject{ID: "npc-craft", Pos: model.Vec2{X: 1600, Y: 1600}},
		Inventory:        model.Inventory{Rows: 1, Columns: 10},
		Job:              model.Job{Kind: model.JobCraft, Products: []string{"WATTLE_WALL"}},
	}
	return Input{
		NPCs:       []model.NPC{gatherNPC("npc-1", model.Vec2{}), gatherNPC("npc-2", model.Vec2{X: 800}), craftNPC},
		Nodes:      gridNodes(4),
		Stockpiles: []model.Stockpile{stockpile},
	}
}

func TestPlannerDeterministicAcrossIndependentInstances(t *testing.T) {
	inputA := buildDeterminismInput()
	inputB := buildDeterminismInput()

	pa := New(inputA, 0, 10*60*1000)
	if err := pa.Run(); err != nil {
		t.Fatalf("run A: %v", err)
	}
	outA, err := pa.GetState()
	if err != nil {
		t.Fatalf("GetState A: %v", err)
	}

	pb := New(inputB, 0, 10*60*1000)
	if err := pb.Run(); err != nil {
		t.Fatalf("run B: %v", err)
	}
	outB, err := pb.GetState()
	if err != nil {
		t.Fatalf("GetState B: %v", err)
	}

	if !reflect.DeepEqual(outA, outB) {
		t.Fatalf("two planner instances from identical input diverged:\nA=%+v\nB=%+v", outA, outB)
	}
}

func TestPlannerDeterministicAcrossVaryingHorizons(t *testing.T) {
	for _, horizonMinutes := range []int64{1, 10, 60} {
		horizon := horizonMinutes * 60 * 1000
		pa := New(buildDeterminismInput(), 0, horizon)
		if err := pa.Run(); err != nil {
			t.Fatalf("horizon %dm: run A: %v", horizonMinutes, err)
		}
		outA, err := pa.GetState()
		if err != nil {
			t.Fatalf("horizon %dm: GetState A: %v", horizonMinutes, err)
		}

		pb := New(buildDeterminismInput(), 0, horizon)
		if err := pb.Run(); err != nil {
			t.Fatalf("horizon %dm: run B: %v", horizonMinutes, err)
		}
		outB, err := pb.GetState()
		if err != nil {
			t.Fatalf("horizon %dm: GetState B: %v", horizonMinutes, err)
		}

		if !reflect.DeepEqual(outA, outB) {
			t.Fatalf("horizon %dm: two planner instances from identical input diverged", horizonMinutes)
		}
	}
}
