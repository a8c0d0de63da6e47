package construct

import "errors"

// Typed error kinds; message text is part of the contract.
var (
	ErrCannotConnectBuildings  = errors.New("Cannot connect two separate buildings")
	ErrCannotConnectStockpiles = errors.New("Cannot connect two separate stockpiles")
	ErrBuildingTooLongEW       = errors.New("House is too long east to west")
	ErrBuildingTooLongNS       = errors.New("House is too long north to south")
	ErrStockpileTileInUse      = errors.New("Cannot remove stockpile tile, please remove items in inventory first")
)
