package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"cellforge/internal/app"
)

// manifestEntry is one cell in a -manifest batch file.
type manifestEntry struct {
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`
	StartTime  int64  `json:"startTime"`
	HorizonMS  int64  `json:"horizonMs"`
}

func main() {
	var (
		cfg        app.Config
		manifest   string
		maxWorkers int
	)
	flag.StringVar(&cfg.InputPath, "in", "", "path to a single input cell snapshot (JSON)")
	flag.StringVar(&cfg.OutputPath, "out", "", "path to write the finalized output (JSON)")
	flag.Int64Var(&cfg.StartTime, "start", 0, "plan start time in milliseconds")
	flag.Int64Var(&cfg.HorizonMS, "horizon", 10*60*1000, "plan horizon in milliseconds")
	flag.StringVar(&manifest, "manifest", "", "path to a JSON list of cells to plan concurrently, instead of -in/-out")
	flag.IntVar(&maxWorkers, "workers", 4, "max cells planned concurrently when -manifest is set")
	flag.Parse()

	if manifest != "" {
		cells, err := readManifest(manifest)
		if err != nil {
			log.Fatalf("read manifest: %v", err)
		}
		if err := app.RunMany(context.Background(), cells, maxWorkers, log.Default()); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if cfg.InputPath == "" || cfg.OutputPath == "" {
		log.Fatal("either -manifest, or both -in and -out, are required")
	}

	cfg.Logger = log.Default()
	if err := app.Run(context.Background(), cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func readManifest(path string) ([]app.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []manifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	cells := make([]app.Config, 0, len(entries))
	for _, e := range entries {
		cells = append(cells, app.Config{
			InputPath:  e.InputPath,
			OutputPath: e.OutputPath,
			StartTime:  e.StartTime,
			HorizonMS:  e.HorizonMS,
		})
	}
	return cells, nil
}
