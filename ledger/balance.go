package ledger

// Balance is one member's net position across all records.
// Net is positive when the member should receive money.
type Balance struct {
	Member string
	Paid   float64
	Owed   float64
	Net    float64
}

// Balances returns one Balance per roster member, in roster order.
//
// paid(m) sums the amounts of records m paid for, owed(m) sums m's share of
// every record m is split into, and Net = paid - owed. Across all members the
// Net values sum to zero up to floating-point error.
func Balances(roster *Roster, records []Record) ([]Balance, error) {
	entries, err := roster.resolveAll(records)
	if err != nil {
		return nil, err
	}

	out := make([]Balance, roster.Len())
	for i, name := range roster.names {
		out[i].Member = name
	}
	for k, e := range entries {
		out[e.payer].Paid += records[k].Amount
		for _, m := range e.split {
			out[m].Owed += e.share
		}
	}
	for i := range out {
		out[i].Net = out[i].Paid - out[i].Owed
	}
	return out, nil
}

// BalanceMap indexes balances by member name.
func BalanceMap(balances []Balance) map[string]float64 {
	m := make(map[string]float64, len(balances))
	for _, b := range balances {
		m[b.Member] = b.Net
	}
	return m
}
