package ledger

import "sort"

// NetDebt is GrossDebt after pairwise cancellation. Each present cell is a
// positive amount above Epsilon, and a pair never appears in both directions.
//
// Cancellation is strictly pairwise: A owes B, B owes C, C owes A of equal
// amounts stays three debts.
type NetDebt struct {
	roster *Roster
	cells  map[pair]float64
}

// Edge is one directed net debt.
type Edge struct {
	From   string
	To     string
	Amount float64
}

// Net collapses mutual obligations between every pair of members.
func Net(g *GrossDebt) *NetDebt {
	n := &NetDebt{roster: g.roster, cells: make(map[pair]float64)}

	done := make(map[pair]bool, len(g.cells))
	for p := range g.cells {
		a, b := p.debtor, p.creditor
		if a > b {
			a, b = b, a
		}
		key := pair{debtor: a, creditor: b}
		if done[key] {
			continue
		}
		done[key] = true

		net := g.cells[pair{debtor: a, creditor: b}] - g.cells[pair{debtor: b, creditor: a}]
		switch {
		case net > Epsilon:
			n.cells[pair{debtor: a, creditor: b}] = net
		case net < -Epsilon:
			n.cells[pair{debtor: b, creditor: a}] = -net
		}
	}
	return n
}

// Amount returns the net amount debtor owes creditor and whether the cell is
// present.
func (n *NetDebt) Amount(debtor, creditor string) (float64, bool) {
	d, okD := n.roster.index[debtor]
	c, okC := n.roster.index[creditor]
	if !okD || !okC {
		return 0, false
	}
	amt, ok := n.cells[pair{debtor: d, creditor: c}]
	return amt, ok
}

func (n *NetDebt) Len() int { return len(n.cells) }

// Edges lists every net debt ordered by debtor then creditor roster position.
func (n *NetDebt) Edges() []Edge {
	keys := make([]pair, 0, len(n.cells))
	for p := range n.cells {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].debtor != keys[j].debtor {
			return keys[i].debtor < keys[j].debtor
		}
		return keys[i].creditor < keys[j].creditor
	})

	edges := make([]Edge, len(keys))
	for i, p := range keys {
		edges[i] = Edge{
			From:   n.roster.names[p.debtor],
			To:     n.roster.names[p.creditor],
			Amount: n.cells[p],
		}
	}
	return edges
}
