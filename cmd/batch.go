package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/funnel"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/guide"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Build a practice batch for a learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		learnerID, _ := cmd.Flags().GetString("user")
		moduleID, _ := cmd.Flags().GetString("module")
		guidePath, _ := cmd.Flags().GetString("guide")
		count, _ := cmd.Flags().GetInt("count")
		perTarget, _ := cmd.Flags().GetInt("per-target")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		g, err := guide.FileProvider{}.Load(ctx, guidePath)
		if err != nil {
			return err
		}

		state, err := a.store.StateRepo().Load(ctx, learnerID, moduleID)
		if err != nil {
			return err
		}
		seen, err := a.seenSet(ctx, learnerID, moduleID)
		if err != nil {
			return err
		}
		svc, err := a.service(ctx)
		if err != nil {
			return err
		}

		batch, err := svc.BuildBatch(ctx, state, seen, funnel.BatchRequest{
			GuideHash: g.Hash,
			Guide:     g.Concepts,
			Total:     count,
			PerTarget: perTarget,
		})
		if err != nil {
			return err
		}

		// Persist the grown seen-set so the next session, online or not,
		// still refuses repeats.
		if err := a.store.SeenCacheRepo().Save(ctx, learnerID, moduleID, seen.All()); err != nil {
			return err
		}

		out, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	batchCmd.Flags().String("user", "", "Learner id")
	batchCmd.Flags().String("module", "", "Module id")
	batchCmd.Flags().String("guide", "", "Path to the guide JSON file")
	batchCmd.Flags().Int("count", 5, "Requested batch size")
	batchCmd.Flags().Int("per-target", 1, "Questions per target slot")
	_ = batchCmd.MarkFlagRequired("user")
	_ = batchCmd.MarkFlagRequired("module")
	_ = batchCmd.MarkFlagRequired("guide")
}
