package harvest

import (
	"errors"
	"testing"

	"cellforge/internal/model"
	"cellforge/internal/rng"
)

func sampleSpawns() []model.ResourceNodeSpawn {
	return []model.ResourceNodeSpawn{
		{Type: "STICK", Probability: 5, SpawnTimeMS: 10_000},
		{Type: "WOOD", Probability: 2, SpawnTimeMS: 30_000},
		{Type: "NEVER", Probability: 0, SpawnTimeMS: 5_000},
	}
}

func TestBuildTableExcludesZeroProbabilityEntries(t *testing.T) {
	table, err := BuildTable(sampleSpawns())
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}
	if table.total != 7 {
		t.Fatalf("expected total mass 7, got %v", table.total)
	}
	for _, e := range table.entries {
		if e.spawn.Type == "NEVER" {
			t.Fatalf("zero-probability entry must be excluded from the table")
		}
	}
}

func TestBuildTableMalformedWhenNoMass(t *testing.T) {
	_, err := BuildTable([]model.ResourceNodeSpawn{{Type: "X", Probability: 0, SpawnTimeMS: 1}})
	if !errors.Is(err, ErrMalformedSpawnTable) {
		t.Fatalf("expected ErrMalformedSpawnTable, got %v", err)
	}
	_, err = BuildTable(nil)
	if !errors.Is(err, ErrMalformedSpawnTable) {
		t.Fatalf("expected ErrMalformedSpawnTable for empty table, got %v", err)
	}
}

func TestSpawnSelectionCoversAllPositiveEntries(t *testing.T) {
	node, err := NewNode(rng.Snapshot{}, sampleSpawns())
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	node.stream = rng.New("spawn-coverage")

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		s := node.Spawn()
		seen[s.ObjectType] = true
		if s.Jitter.X < -100 || s.Jitter.X >= 100 || s.Jitter.Y < -100 || s.Jitter.Y >= 100 {
			t.Fatalf("jitter out of range: %+v", s.Jitter)
		}
	}
	if !seen["STICK"] || !seen["WOOD"] {
		t.Fatalf("expected both positive-probability types to appear, saw %v", seen)
	}
	if seen["NEVER"] {
		t.Fatalf("zero-probability type must never be selected")
	}
}

func TestRespawnDelayRangeIsHalfToOneAndHalfBase(t *testing.T) {
	node, err := NewNode(rng.Snapshot{}, []model.ResourceNodeSpawn{{Type: "STICK", Probability: 1, SpawnTimeMS: 1000}})
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	node.stream = rng.New("respawn-range")

	for i := 0; i < 200; i++ {
		s := node.Spawn()
		if s.RespawnDelay < 500 || s.RespawnDelay > 1500 {
			t.Fatalf("respawn delay %d out of expected [500,1500] range", s.RespawnDelay)
		}
	}
}

func TestSaveStateResumeIsByteIdentical(t *testing.T) {
	node, err := NewNode(rng.Snapshot{}, sampleSpawns())
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	node.stream = rng.New("resume-check")

	for i := 0; i < 10; i++ {
		node.Spawn()
	}
	saved := node.SaveState()

	want := make([]Spawn, 5)
	for i := range want {
		want[i] = node.Spawn()
	}

	resumed, err := NewNode(saved, sampleSpawns())
	if err != nil {
		t.Fatalf("NewNode(resumed): %v", err)
	}
	for i, w := range want {
		got := resumed.Spawn()
		if got != w {
			t.Fatalf("resumed spawn %d: got %+v want %+v", i, got, w)
		}
	}
}
