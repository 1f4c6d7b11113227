package cfg

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"harvester/internal/domain/keys"
	"harvester/internal/parsing"

	"github.com/spf13/cobra"
)

// initHistoryCmd creates the command showing past runs from the state database.
func initHistoryCmd(d Deps) *cobra.Command {
	var (
		since string
		limit int
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show totals and recent runs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if d.Store == nil {
				return errors.New("no state database available")
			}
			from, err := parsing.ParseSince(since, time.Now())
			if err != nil {
				return err
			}

			rs := d.Store.GetRunStore()
			sum, err := rs.GetSummary(cmd.Context())
			if err != nil {
				return err
			}
			runs, err := rs.ListRuns(cmd.Context(), from, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Runs: %d  Successful: %d  Failed: %d  Skipped: %d\n",
				sum.Runs, sum.Successful, sum.Failed, sum.Skipped)
			if !sum.LastRunAt.IsZero() {
				fmt.Fprintf(out, "Last run: %s (list %q)\n", sum.LastRunAt.Local().Format(time.DateTime), sum.LastList)
			}
			if len(runs) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tLIST\tSTATE\tTOTAL\tOK\tFAILED\tSKIPPED\tELAPSED")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					r.StartedAt.Local().Format(time.DateTime), r.ListName, r.State,
					r.Total, r.Successful, r.Failed, r.Skipped, parsing.FormatDuration(r.Elapsed))
			}
			return w.Flush()
		},
	}

	historyCmd.Flags().StringVar(&since, keys.HistorySince, "", "Only runs since this date or duration (e.g. 2024-05-01, 72h)")
	historyCmd.Flags().IntVar(&limit, keys.HistoryLimit, 20, "Maximum runs to show")
	return historyCmd
}
