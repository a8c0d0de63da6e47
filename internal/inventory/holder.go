package inventory

import "cellforge/internal/model"

// HolderKind discriminates which ownership reference PickUp/Craft must set
// on a newly-placed slot: a person's or an NPC's, never both.
type HolderKind int

const (
	HolderPerson HolderKind = iota
	HolderNPC
)

// HolderRef names the actor whose inventory an operation is mutating.
type HolderRef struct {
	Kind HolderKind
	ID   string
}

func (h HolderRef) applyTo(obj *model.NetworkObject) {
	obj.Ownership.Clear()
	obj.Ownership.IsInInventory = true
	switch h.Kind {
	case HolderPerson:
		obj.Ownership.GrabbedByPersonID = h.ID
	case HolderNPC:
		obj.Ownership.GrabbedByNPCID = h.ID
	}
}
