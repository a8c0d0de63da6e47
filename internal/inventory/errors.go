package inventory

import "errors"

// Typed error kinds. Message text is part of the contract: tests and
// callers match these strings verbatim.
var (
	ErrInventoryFull         = errors.New("Not enough room for item")
	ErrInsufficientMaterials = errors.New("Not enough materials for crafting")
)
