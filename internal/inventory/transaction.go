package inventory

import "cellforge/internal/model"

// Transaction is the minimal delta describing what an Engine operation did
// to a holder's inventory. Every operation returns one instead of mutating
// its argument in place, so a failed call can never leave a partial write.
type Transaction struct {
	UpdatedOriginal *model.NetworkObject
	StackedInto     []model.NetworkObject
	DeletedIDs      []string
	ModifiedSlots   []model.NetworkObject
}

func mergeTransactions(parts ...Transaction) Transaction {
	var out Transaction
	for _, p := range parts {
		if p.UpdatedOriginal != nil {
			out.UpdatedOriginal = p.UpdatedOriginal
		}
		out.StackedInto = append(out.StackedInto, p.StackedInto...)
		out.DeletedIDs = append(out.DeletedIDs, p.DeletedIDs...)
		out.ModifiedSlots = append(out.ModifiedSlots, p.ModifiedSlots...)
	}
	return out
}
