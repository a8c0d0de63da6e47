package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cellforge/internal/model"
	"cellforge/internal/planner"
)

func writeInput(t *testing.T, dir, name string, in planner.Input) string {
	t.Helper()
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal input: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func idleInput() planner.Input {
	return planner.Input{
		NPCs: []model.NPC{{
			PositionedObject: model.PositionedObject{ID: "npc-1"},
			Inventory:        model.Inventory{Rows: 1, Columns: 4},
			Job:              model.Job{Kind: model.JobKind("idle")},
		}},
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInput(t, dir, "in.json", idleInput())
	outPath := filepath.Join(dir, "out.json")

	cfg := Config{InputPath: inPath, OutputPath: outPath, HorizonMS: 5000}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var out planner.Output
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(out.NPCs) != 1 {
		t.Fatalf("expected 1 npc in output, got %d", len(out.NPCs))
	}
}

func TestRunManyProcessesEveryCell(t *testing.T) {
	dir := t.TempDir()
	var cells []Config
	for i := 0; i < 3; i++ {
		name := filepath.Join("in", string(rune('a'+i))+".json")
		os.MkdirAll(filepath.Join(dir, "in"), 0o755)
		inPath := writeInput(t, dir, name, idleInput())
		outPath := filepath.Join(dir, string(rune('a'+i))+"-out.json")
		cells = append(cells, Config{InputPath: inPath, OutputPath: outPath, HorizonMS: 1000})
	}

	if err := RunMany(context.Background(), cells, 2, nil); err != nil {
		t.Fatalf("RunMany: %v", err)
	}

	for _, cell := range cells {
		if _, err := os.Stat(cell.OutputPath); err != nil {
			t.Fatalf("expected output at %s: %v", cell.OutputPath, err)
		}
	}
}
