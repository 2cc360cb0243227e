package ledger

// Summary is everything derived from one snapshot. Both halves are computed
// from the same records.
type Summary struct {
	Roster   *Roster
	Balances []Balance
	Net      *NetDebt
}

// Compute runs the balance calculator and the debt pipeline over a snapshot.
// It fails as a whole if any record is invalid.
func Compute(members []string, records []Record) (*Summary, error) {
	roster, err := NewRoster(members)
	if err != nil {
		return nil, err
	}
	balances, err := Balances(roster, records)
	if err != nil {
		return nil, err
	}
	gross, err := BuildGrossDebt(roster, records)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Roster:   roster,
		Balances: balances,
		Net:      Net(gross),
	}, nil
}

// BalanceOf returns the balance of one member.
func (s *Summary) BalanceOf(m string) (Balance, error) {
	i, err := s.Roster.indexOf(m)
	if err != nil {
		return Balance{}, err
	}
	return s.Balances[i], nil
}

// ShareLine is one record seen from a member who is split into it.
type ShareLine struct {
	Record    Record
	Share     float64
	SplitSize int
}

// SharesOf lists the records m is split into, in input order, with m's share
// of each.
func SharesOf(roster *Roster, m string, records []Record) ([]ShareLine, error) {
	mi, err := roster.indexOf(m)
	if err != nil {
		return nil, err
	}
	entries, err := roster.resolveAll(records)
	if err != nil {
		return nil, err
	}

	var lines []ShareLine
	for k, e := range entries {
		for _, s := range e.split {
			if s == mi {
				lines = append(lines, ShareLine{
					Record:    records[k],
					Share:     e.share,
					SplitSize: len(e.split),
				})
				break
			}
		}
	}
	return lines, nil
}
