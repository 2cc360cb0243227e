package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/SriHarshaKodavati/openBill/ledger"
	"github.com/SriHarshaKodavati/openBill/utils"
)

// snapshotFile is the offline input: a member list and the expenses, in the
// same shape the API returns them.
type snapshotFile struct {
	Members  []string          `json:"members"`
	Expenses []snapshotExpense `json:"expenses"`
}

type snapshotExpense struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	PaidBy       string          `json:"paidBy"`
	SplitBetween []string        `json:"splitBetween"`
}

func newBalancesCommand() *cobra.Command {
	var file, member string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Compute balances and netted debts from a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(file)
			if err != nil {
				return err
			}
			return printBalances(cmd.OutOrStdout(), snap, member)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "snapshot file (- for stdin)")
	cmd.Flags().StringVarP(&member, "member", "m", "", "show whom this member owes and who owes them")
	cmd.MarkFlagRequired("file")

	return cmd
}

func readSnapshot(path string) (*snapshotFile, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	var snap snapshotFile
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

func (s *snapshotFile) records() ([]ledger.Record, error) {
	records := make([]ledger.Record, len(s.Expenses))
	for i, e := range s.Expenses {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		}
		amount, err := utils.ValidateAmount(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", id, err)
		}
		records[i] = ledger.Record{
			ID:           id,
			Description:  e.Description,
			Amount:       amount,
			PaidBy:       e.PaidBy,
			SplitBetween: e.SplitBetween,
		}
	}
	return records, nil
}

func printBalances(w io.Writer, snap *snapshotFile, member string) error {
	records, err := snap.records()
	if err != nil {
		return err
	}
	summary, err := ledger.Compute(snap.Members, records)
	if err != nil {
		return err
	}

	if member != "" {
		return printMember(w, summary, member)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MEMBER\tPAID\tOWED\tBALANCE\t")
	for _, b := range summary.Balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", b.Member, utils.FormatAmount(b.Paid), utils.FormatAmount(b.Owed), utils.FormatAmount(b.Net))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	edges := summary.Net.Edges()
	fmt.Fprintln(w)
	if len(edges) == 0 {
		fmt.Fprintln(w, "All settled up.")
		return nil
	}
	fmt.Fprintln(w, "Debts:")
	for _, e := range edges {
		fmt.Fprintf(w, "  %s owes %s %s\n", e.From, e.To, utils.FormatAmount(e.Amount))
	}
	return nil
}

func printMember(w io.Writer, summary *ledger.Summary, member string) error {
	balance, err := summary.BalanceOf(member)
	if err != nil {
		return err
	}
	creditors, err := summary.Net.CreditorsOf(member)
	if err != nil {
		return err
	}
	debtors, err := summary.Net.DebtorsOf(member)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: paid %s, owed %s, balance %s\n",
		member, utils.FormatAmount(balance.Paid), utils.FormatAmount(balance.Owed), utils.FormatAmount(balance.Net))

	fmt.Fprintf(w, "Owes (%s total):\n", utils.FormatAmount(ledger.Total(creditors)))
	for _, c := range creditors {
		fmt.Fprintf(w, "  %s %s\n", c.Member, utils.FormatAmount(c.Amount))
	}
	fmt.Fprintf(w, "Owed by (%s total):\n", utils.FormatAmount(ledger.Total(debtors)))
	for _, d := range debtors {
		fmt.Fprintf(w, "  %s %s\n", d.Member, utils.FormatAmount(d.Amount))
	}
	return nil
}
