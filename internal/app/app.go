// Package app wires the deterministic Cell Planner into a runnable batch
// job: read an Input snapshot as JSON, run one planning pass, emit the
// resulting Output timelines as JSON, all while publishing structured
// events through the logging router. Independent cells share no state, so
// a batch of them runs concurrently over a bounded worker pool.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"cellforge/internal/planner"
	"cellforge/logging"
	loggingsinks "cellforge/logging/sinks"
)

// Config controls one batch planning run.
type Config struct {
	InputPath  string
	OutputPath string
	StartTime  int64
	HorizonMS  int64
	Logger     *log.Logger
}

// Run reads Config.InputPath, executes a Planner across HorizonMS starting
// at StartTime, and writes the finalized Output to Config.OutputPath.
func Run(ctx context.Context, cfg Config) error {
	fallbackLogger := cfg.Logger
	if fallbackLogger == nil {
		fallbackLogger = log.Default()
	}

	router, err := newConsoleRouter()
	if err != nil {
		return fmt.Errorf("construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			fallbackLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	if err := runOne(cfg, router); err != nil {
		return err
	}
	fallbackLogger.Printf("plan complete: horizon=%dms output=%s", cfg.HorizonMS, cfg.OutputPath)
	return nil
}

// RunMany executes every Config in cells concurrently, capped at
// maxWorkers in flight at once, sharing one logging router. Per §5 of the
// planning model, cells share no state and may run fully in parallel; a
// worker pool caps how many run at once rather than spawning len(cells)
// goroutines unconditionally. Returns the first error encountered, after
// every worker has finished.
func RunMany(ctx context.Context, cells []Config, maxWorkers int, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	router, err := newConsoleRouter()
	if err != nil {
		return fmt.Errorf("construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	jobs := make(chan Config)
	errs := make(chan error, len(cells))

	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cell := range jobs {
				if err := runOne(cell, router); err != nil {
					errs <- fmt.Errorf("%s: %w", cell.InputPath, err)
					continue
				}
				logger.Printf("plan complete: input=%s output=%s", cell.InputPath, cell.OutputPath)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, cell := range cells {
			select {
			case jobs <- cell:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(errs)

	var firstErr error
	for err := range errs {
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func newConsoleRouter() (*logging.Router, error) {
	logConfig := logging.DefaultConfig()
	return logging.NewRouter(logging.ClockFunc(time.Now), logConfig, []logging.NamedSink{
		{Name: "console", Sink: loggingsinks.NewConsoleSink(os.Stdout, logConfig.Console)},
	})
}

func runOne(cfg Config, publisher logging.Publisher) error {
	input, err := readInput(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	p := planner.New(input, cfg.StartTime, cfg.HorizonMS).WithPublisher(publisher)
	if err := p.Run(); err != nil {
		return fmt.Errorf("run planner: %w", err)
	}

	out, err := p.GetState()
	if err != nil {
		return fmt.Errorf("finalize planner state: %w", err)
	}

	if err := writeOutput(cfg.OutputPath, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func readInput(path string) (planner.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return planner.Input{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return planner.Input{}, err
	}
	var input planner.Input
	if err := json.Unmarshal(data, &input); err != nil {
		return planner.Input{}, fmt.Errorf("unmarshal input: %w", err)
	}
	return input, nil
}

func writeOutput(path string, out planner.Output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
