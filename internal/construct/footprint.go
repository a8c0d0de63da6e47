// Package construct validates and mutates building and stockpile tile
// footprints: the external collaborator contract for constructBuilding and
// stockpile placement (§6/§8 of the shared object model this engine
// serves). It never touches inventories directly; callers separately debit
// the WATTLE_WALL items a construction consumes.
package construct

import "cellforge/internal/model"

// TileCoord identifies one 200px construction tile by grid index.
type TileCoord struct {
	CX int64
	CY int64
}

// TileOf converts a pixel position to its tile coordinate.
func TileOf(pos model.Vec2) TileCoord {
	return TileCoord{CX: floorDiv(pos.X, model.TileSize), CY: floorDiv(pos.Y, model.TileSize)}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func adjacent(a, b TileCoord) bool {
	dx := a.CX - b.CX
	dy := a.CY - b.CY
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return (dx == 1 && dy == 0) || (dx == 0 && dy == 1)
}

// PieceKind discriminates a footprint entity.
type PieceKind string

const (
	PieceHouse      PieceKind = "house"
	PieceStockpile  PieceKind = "stockpile"
)

// Piece is one maximal connected footprint: a single house or stockpile.
type Piece struct {
	ID    string
	Kind  PieceKind
	Tiles []TileCoord
}

func (p Piece) contains(tile TileCoord) bool {
	for _, t := range p.Tiles {
		if t == tile {
			return true
		}
	}
	return false
}

func (p Piece) adjacentTo(tile TileCoord) bool {
	for _, t := range p.Tiles {
		if adjacent(t, tile) {
			return true
		}
	}
	return false
}

// perimeterEdges counts boundary edges of a footprint: for each tile, one
// edge per side whose neighbor is not also in the footprint.
func perimeterEdges(tiles []TileCoord) int {
	set := make(map[TileCoord]bool, len(tiles))
	for _, t := range tiles {
		set[t] = true
	}
	edges := 0
	deltas := []TileCoord{{CX: 1}, {CX: -1}, {CY: 1}, {CY: -1}}
	for _, t := range tiles {
		for _, d := range deltas {
			if !set[TileCoord{CX: t.CX + d.CX, CY: t.CY + d.CY}] {
				edges++
			}
		}
	}
	return edges
}

func span(tiles []TileCoord, newTile TileCoord) (width, height int64) {
	minX, maxX := newTile.CX, newTile.CX
	minY, maxY := newTile.CY, newTile.CY
	for _, t := range tiles {
		if t.CX < minX {
			minX = t.CX
		}
		if t.CX > maxX {
			maxX = t.CX
		}
		if t.CY < minY {
			minY = t.CY
		}
		if t.CY > maxY {
			maxY = t.CY
		}
	}
	return maxX - minX + 1, maxY - minY + 1
}

// State is the immutable footprint state for one cell's constructions.
type State struct {
	Pieces []Piece
}

// Counts summarizes a State for the concrete test scenarios: total houses,
// total floor tiles across houses, and total perimeter wall segments.
type Counts struct {
	Houses int
	Floors int
	Walls  int
}

// CountHouses summarizes every house piece in state.
func (s State) CountHouses() Counts {
	var c Counts
	for _, p := range s.Pieces {
		if p.Kind != PieceHouse {
			continue
		}
		c.Houses++
		c.Floors += len(p.Tiles)
		c.Walls += perimeterEdges(p.Tiles)
	}
	return c
}

func (s State) pieceContaining(kind PieceKind, tile TileCoord) (int, bool) {
	for i, p := range s.Pieces {
		if p.Kind == kind && p.contains(tile) {
			return i, true
		}
	}
	return -1, false
}

func (s State) adjacentPieces(kind PieceKind, tile TileCoord) []int {
	var idx []int
	for i, p := range s.Pieces {
		if p.Kind == kind && p.adjacentTo(tile) {
			idx = append(idx, i)
		}
	}
	return idx
}

func clone(s State) State {
	out := State{Pieces: make([]Piece, len(s.Pieces))}
	for i, p := range s.Pieces {
		out.Pieces[i] = Piece{ID: p.ID, Kind: p.Kind, Tiles: append([]TileCoord(nil), p.Tiles...)}
	}
	return out
}

func removeTileAt(state State, pieceIdx int, tile TileCoord) State {
	out := clone(state)
	piece := out.Pieces[pieceIdx]
	kept := piece.Tiles[:0]
	for _, t := range piece.Tiles {
		if t != tile {
			kept = append(kept, t)
		}
	}
	piece.Tiles = kept
	if len(piece.Tiles) == 0 {
		out.Pieces = append(out.Pieces[:pieceIdx], out.Pieces[pieceIdx+1:]...)
		return out
	}
	out.Pieces[pieceIdx] = piece
	return out
}

// ConstructHouseTile toggles one house tile: if the tile already belongs to
// a house, it is removed (deconstructing that house if it was the last
// tile); otherwise the tile is added, joining an adjacent house or
// starting a new one. maxSpan bounds the bounding-box width/height in
// tiles a single house may occupy.
func ConstructHouseTile(state State, tile TileCoord, maxSpan int64, newID func() string) (State, Counts, error) {
	if idx, ok := state.pieceContaining(PieceHouse, tile); ok {
		next := removeTileAt(state, idx, tile)
		return next, next.CountHouses(), nil
	}

	adjacentIdx := state.adjacentPieces(PieceHouse, tile)
	if len(adjacentIdx) > 1 {
		return state, state.CountHouses(), ErrCannotConnectBuildings
	}

	if len(adjacentIdx) == 1 {
		idx := adjacentIdx[0]
		width, height := span(state.Pieces[idx].Tiles, tile)
		if width > maxSpan {
			return state, state.CountHouses(), ErrBuildingTooLongEW
		}
		if height > maxSpan {
			return state, state.CountHouses(), ErrBuildingTooLongNS
		}
		next := clone(state)
		next.Pieces[idx].Tiles = append(next.Pieces[idx].Tiles, tile)
		return next, next.CountHouses(), nil
	}

	next := clone(state)
	next.Pieces = append(next.Pieces, Piece{ID: newID(), Kind: PieceHouse, Tiles: []TileCoord{tile}})
	return next, next.CountHouses(), nil
}

// ConstructStockpileTile joins tile to an adjacent stockpile piece, starts
// a new one if isolated, or fails if it would connect two separate
// existing stockpiles.
func ConstructStockpileTile(state State, tile TileCoord, newID func() string) (State, error) {
	if _, ok := state.pieceContaining(PieceStockpile, tile); ok {
		return state, nil
	}

	adjacentIdx := state.adjacentPieces(PieceStockpile, tile)
	if len(adjacentIdx) > 1 {
		return state, ErrCannotConnectStockpiles
	}
	if len(adjacentIdx) == 1 {
		next := clone(state)
		next.Pieces[adjacentIdx[0]].Tiles = append(next.Pieces[adjacentIdx[0]].Tiles, tile)
		return next, nil
	}

	next := clone(state)
	next.Pieces = append(next.Pieces, Piece{ID: newID(), Kind: PieceStockpile, Tiles: []TileCoord{tile}})
	return next, nil
}

// RemoveStockpileTile removes tile from its stockpile piece. hasItems must
// report whether that stockpile's inventory currently holds any slots;
// removal fails with ErrStockpileTileInUse if so.
func RemoveStockpileTile(state State, tile TileCoord, hasItems bool) (State, error) {
	idx, ok := state.pieceContaining(PieceStockpile, tile)
	if !ok {
		return state, nil
	}
	if hasItems {
		return state, ErrStockpileTileInUse
	}
	return removeTileAt(state, idx, tile), nil
}
