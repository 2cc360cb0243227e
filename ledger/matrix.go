package ledger

// pair addresses a directed (debtor, creditor) cell by roster position.
type pair struct {
	debtor   int
	creditor int
}

// GrossDebt is the un-netted debt relation: for every (debtor, creditor) pair
// touched by at least one record, the debtor's accumulated share of expenses
// the creditor paid for. Untouched pairs are absent and read as zero.
type GrossDebt struct {
	roster *Roster
	cells  map[pair]float64
}

// BuildGrossDebt expands each record into debts from the split members to the
// payer. A payer's own share is not a debt and is never recorded.
func BuildGrossDebt(roster *Roster, records []Record) (*GrossDebt, error) {
	entries, err := roster.resolveAll(records)
	if err != nil {
		return nil, err
	}

	g := &GrossDebt{roster: roster, cells: make(map[pair]float64)}
	for _, e := range entries {
		for _, m := range e.split {
			if m == e.payer {
				continue
			}
			g.cells[pair{debtor: m, creditor: e.payer}] += e.share
		}
	}
	return g, nil
}

// Amount returns what debtor owes creditor before netting. Unknown members and
// untouched pairs read as zero.
func (g *GrossDebt) Amount(debtor, creditor string) float64 {
	d, okD := g.roster.index[debtor]
	c, okC := g.roster.index[creditor]
	if !okD || !okC {
		return 0
	}
	return g.cells[pair{debtor: d, creditor: c}]
}

// Len returns the number of materialized cells.
func (g *GrossDebt) Len() int { return len(g.cells) }
