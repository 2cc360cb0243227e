package ledger

import "sort"

// Counterparty is the other side of a net debt seen from one member.
type Counterparty struct {
	Member string
	Amount float64
}

// CreditorsOf lists the members m owes, largest amount first.
func (n *NetDebt) CreditorsOf(m string) ([]Counterparty, error) {
	i, err := n.roster.indexOf(m)
	if err != nil {
		return nil, err
	}
	return n.collect(func(p pair) (int, bool) {
		return p.creditor, p.debtor == i
	}), nil
}

// DebtorsOf lists the members who owe m, largest amount first.
func (n *NetDebt) DebtorsOf(m string) ([]Counterparty, error) {
	i, err := n.roster.indexOf(m)
	if err != nil {
		return nil, err
	}
	return n.collect(func(p pair) (int, bool) {
		return p.debtor, p.creditor == i
	}), nil
}

// collect gathers the counterparties selected by match and sorts them by
// amount descending, ties broken by roster position.
func (n *NetDebt) collect(match func(pair) (int, bool)) []Counterparty {
	type hit struct {
		pos    int
		amount float64
	}
	var hits []hit
	for p, amt := range n.cells {
		if other, ok := match(p); ok {
			hits = append(hits, hit{pos: other, amount: amt})
		}
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].amount != hits[b].amount {
			return hits[a].amount > hits[b].amount
		}
		return hits[a].pos < hits[b].pos
	})

	out := make([]Counterparty, len(hits))
	for k, h := range hits {
		out[k] = Counterparty{Member: n.roster.names[h.pos], Amount: h.amount}
	}
	return out
}

// Total sums the amounts of a counterparty list.
func Total(parties []Counterparty) float64 {
	var sum float64
	for _, p := range parties {
		sum += p.Amount
	}
	return sum
}
