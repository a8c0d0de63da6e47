package harvest

import "errors"

// ErrMalformedSpawnTable is returned when a resource node's spawn table has
// no selectable mass (empty, or every entry at zero probability).
var ErrMalformedSpawnTable = errors.New("harvest: spawn table has no selectable mass")
