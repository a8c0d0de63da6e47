package planner

import "errors"

// Typed error kinds for the planner's output-finalization consistency
// checks and pass-through resource-table failures.
var (
	ErrInitialResourceNotFound  = errors.New("planner: NPC references a resource node not present in the input snapshot")
	ErrInitialStockpileNotFound = errors.New("planner: NPC references a stockpile not present in the input snapshot")
)
