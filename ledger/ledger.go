// Package ledger balances a group's shared expenses.
//
// Everything here is a pure function of a snapshot: an ordered member list and
// the expense records that exist at the time of the call. Nothing is cached or
// persisted, and no function blocks or performs I/O, so a snapshot may be
// evaluated from any number of goroutines at once.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Epsilon is the smallest net debt worth reporting. Anything at or below it is
// floating-point noise and the pair counts as settled.
const Epsilon = 0.01

var (
	ErrInvalidRecord   = errors.New("ledger: invalid record")
	ErrUnknownMember   = errors.New("ledger: unknown member")
	ErrDuplicateMember = errors.New("ledger: duplicate member")
)

// RecordError describes why a record was rejected. It matches
// ErrInvalidRecord under errors.Is.
type RecordError struct {
	ID     string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrInvalidRecord, e.ID, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrInvalidRecord }

func invalid(rec Record, format string, args ...any) error {
	return &RecordError{ID: rec.ID, Reason: fmt.Sprintf(format, args...)}
}

// checkAmount rejects amounts that would turn into NaN, infinite or negative
// shares.
func checkAmount(rec Record) error {
	if math.IsNaN(rec.Amount) || math.IsInf(rec.Amount, 0) || rec.Amount <= 0 {
		return invalid(rec, "amount %v must be positive", rec.Amount)
	}
	return nil
}

// Record is one immutable expense: Amount paid by PaidBy and shared equally
// among SplitBetween.
type Record struct {
	ID           string
	Description  string
	Amount       float64
	PaidBy       string
	SplitBetween []string
	CreatedAt    time.Time
}

// Roster is an immutable snapshot of a group's member list. Members are
// addressed by their position, which is also the tie-break order for queries.
type Roster struct {
	names []string
	index map[string]int
}

// NewRoster snapshots members. Names must be unique.
func NewRoster(members []string) (*Roster, error) {
	r := &Roster{
		names: make([]string, len(members)),
		index: make(map[string]int, len(members)),
	}
	for i, name := range members {
		if _, dup := r.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMember, name)
		}
		r.names[i] = name
		r.index[name] = i
	}
	return r, nil
}

func (r *Roster) Len() int { return len(r.names) }

// Members returns a copy of the member list in snapshot order.
func (r *Roster) Members() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *Roster) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

func (r *Roster) indexOf(name string) (int, error) {
	i, ok := r.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMember, name)
	}
	return i, nil
}

// entry is a record resolved against a roster.
type entry struct {
	payer int
	split []int
	share float64
}

// resolve validates rec against the roster and collapses duplicate split
// members, keeping first-appearance order.
func (r *Roster) resolve(rec Record) (entry, error) {
	if strings.TrimSpace(rec.Description) == "" {
		return entry{}, invalid(rec, "empty description")
	}
	if err := checkAmount(rec); err != nil {
		return entry{}, err
	}
	payer, ok := r.index[rec.PaidBy]
	if !ok {
		return entry{}, invalid(rec, "payer %q is not a member", rec.PaidBy)
	}

	seen := make(map[int]bool, len(rec.SplitBetween))
	split := make([]int, 0, len(rec.SplitBetween))
	for _, name := range rec.SplitBetween {
		i, ok := r.index[name]
		if !ok {
			return entry{}, invalid(rec, "split member %q is not a member", name)
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		split = append(split, i)
	}
	if len(split) == 0 {
		return entry{}, invalid(rec, "empty split")
	}

	return entry{
		payer: payer,
		split: split,
		share: rec.Amount / float64(len(split)),
	}, nil
}

// resolveAll resolves every record or none.
func (r *Roster) resolveAll(records []Record) ([]entry, error) {
	entries := make([]entry, len(records))
	for i, rec := range records {
		e, err := r.resolve(rec)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}

// Validate reports whether rec could be balanced against members. Collaborators
// use it to reject records before they are stored.
func Validate(members []string, rec Record) error {
	roster, err := NewRoster(members)
	if err != nil {
		return err
	}
	_, err = roster.resolve(rec)
	return err
}

// Share returns the amount each split member is responsible for, after
// duplicate split members collapse. It checks the amount and split but not
// membership.
func Share(rec Record) (float64, error) {
	if err := checkAmount(rec); err != nil {
		return 0, err
	}
	distinct := make(map[string]bool, len(rec.SplitBetween))
	for _, name := range rec.SplitBetween {
		distinct[name] = true
	}
	if len(distinct) == 0 {
		return 0, invalid(rec, "empty split")
	}
	return rec.Amount / float64(len(distinct)), nil
}
