package game

// Transfer moves mass from a cell to one of its neighbors.
// A transfer into a cell of another owner is an attack.
type Transfer struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Mass   int `json:"mass"`
}

// TransferMove collects the transfers of one player for one turn.
type TransferMove struct {
	transfers []Transfer
}

func NewTransferMove(transfers ...Transfer) *TransferMove {
	return &TransferMove{transfers: append([]Transfer(nil), transfers...)}
}

func (tm *TransferMove) Add(t Transfer) {
	tm.transfers = append(tm.transfers, t)
}

// AddAndCombine adds the mass to the latest transfer with the same source and target,
// or appends the transfer if there is none.
func (tm *TransferMove) AddAndCombine(t Transfer) {
	for i := len(tm.transfers) - 1; i >= 0; i-- {
		if tm.transfers[i].Source == t.Source && tm.transfers[i].Target == t.Target {
			tm.transfers[i].Mass += t.Mass
			return
		}
	}
	tm.transfers = append(tm.transfers, t)
}

// AddExclusive combines like AddAndCombine but refuses a transfer whose source already
// sends to a different target. A source may only send once per move.
func (tm *TransferMove) AddExclusive(t Transfer) bool {
	for _, other := range tm.transfers {
		if other.Source == t.Source && other.Target != t.Target {
			return false
		}
	}
	tm.AddAndCombine(t)
	return true
}

func (tm *TransferMove) Len() int {
	return len(tm.transfers)
}

// Transfers returns a copy of the collected transfers.
func (tm *TransferMove) Transfers() []Transfer {
	return append([]Transfer(nil), tm.transfers...)
}
