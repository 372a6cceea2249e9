package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/funnel"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Record an answered question and update mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		learnerID, _ := cmd.Flags().GetString("user")
		moduleID, _ := cmd.Flags().GetString("module")
		questionID, _ := cmd.Flags().GetString("question")
		batchID, _ := cmd.Flags().GetString("batch")
		tags, _ := cmd.Flags().GetStringSlice("tags")
		correct, _ := cmd.Flags().GetBool("correct")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		state, err := a.store.StateRepo().Load(ctx, learnerID, moduleID)
		if err != nil {
			return err
		}

		updated, cmds := funnel.RecordAnswer(state, tags, correct)
		if len(updated) == 0 {
			return fmt.Errorf("no valid concept tags in %v", tags)
		}

		for _, c := range cmds {
			switch c.Kind {
			case funnel.PersistLocal:
				if err := a.store.StateRepo().Save(ctx, c.State); err != nil {
					return err
				}
			case funnel.PersistRemote:
				if a.remote == nil {
					continue
				}
				seen, err := a.seenSet(ctx, learnerID, moduleID)
				if err != nil {
					a.log.Warn("remote sync skipped", zap.Error(err))
					continue
				}
				if err := seen.Reconcile(ctx); err != nil {
					a.log.Warn("remote sync failed", zap.Error(err))
				}
			}
		}

		if err := a.store.AnswerRepo().Append(ctx, learnerID, moduleID, batchID, questionID, tags, correct); err != nil {
			return err
		}

		params := a.params()
		for _, r := range updated {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d attempts correct, mastery %.2f\n",
				r.DisplayName, r.Correct, r.Attempts, params.ExpectedMastery(r))
		}
		return nil
	},
}

func init() {
	answerCmd.Flags().String("user", "", "Learner id")
	answerCmd.Flags().String("module", "", "Module id")
	answerCmd.Flags().String("question", "", "Question id being answered")
	answerCmd.Flags().String("batch", "", "Batch id the question came from")
	answerCmd.Flags().StringSlice("tags", nil, "Concept tags on the question")
	answerCmd.Flags().Bool("correct", false, "Whether the answer was correct")
	_ = answerCmd.MarkFlagRequired("user")
	_ = answerCmd.MarkFlagRequired("module")
	_ = answerCmd.MarkFlagRequired("question")
	_ = answerCmd.MarkFlagRequired("tags")
}
