package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a learner's mastery table sorted by priority",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		learnerID, _ := cmd.Flags().GetString("user")
		moduleID, _ := cmd.Flags().GetString("module")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		state, err := a.store.StateRepo().Load(ctx, learnerID, moduleID)
		if err != nil {
			return err
		}
		total, err := a.store.AnswerRepo().Count(ctx, learnerID, moduleID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Learner %s, module %s: %d concepts tracked, %d answers recorded\n\n",
			learnerID, moduleID, len(state.Mastery), total)

		if len(state.Mastery) == 0 {
			return nil
		}

		params := a.params()
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CONCEPT\tATTEMPTS\tCORRECT\tMASTERY\tPRIORITY")
		for _, key := range params.Rank(state.Mastery) {
			r := state.Mastery.Get(key)
			fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.3f\n",
				r.DisplayName, r.Attempts, r.Correct,
				params.ExpectedMastery(r), params.Priority(r))
		}
		return w.Flush()
	},
}

func init() {
	statsCmd.Flags().String("user", "", "Learner id")
	statsCmd.Flags().String("module", "", "Module id")
	_ = statsCmd.MarkFlagRequired("user")
	_ = statsCmd.MarkFlagRequired("module")
}
