package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/config"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/guide"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/sourcing"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/variant"
)

var variantCmd = &cobra.Command{
	Use:   "variant",
	Short: "Show the sourcing variant assigned to a learner/guide pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		learnerID, _ := cmd.Flags().GetString("user")
		guidePath, _ := cmd.Flags().GetString("guide")
		override, _ := cmd.Flags().GetString("override")

		g, err := guide.FileProvider{}.Load(cmd.Context(), guidePath)
		if err != nil {
			return err
		}

		overrides := config.Load().Overrides
		if override != "" {
			a, err := variant.ParseAssignment(override)
			if err != nil {
				return err
			}
			if overrides == nil {
				overrides = variant.Overrides{}
			}
			overrides[g.Hash] = a
		}

		assignment := variant.Assign(learnerID, g.Hash, overrides)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "guide: %s (%s)\n", g.Title, g.Hash[:12])
		fmt.Fprintf(out, "assignment: %s\n", assignment)
		for slot := 0; slot < 2; slot++ {
			order := sourcing.TierOrder(assignment, slot)
			names := make([]string, len(order))
			for i, tier := range order {
				names[i] = string(tier)
			}
			fmt.Fprintf(out, "slot %d tier order: %s\n", slot, strings.Join(names, " > "))
		}
		return nil
	},
}

func init() {
	variantCmd.Flags().String("user", "", "Learner id")
	variantCmd.Flags().String("guide", "", "Path to the guide JSON file")
	variantCmd.Flags().String("override", "", "Force an assignment for this guide")
	_ = variantCmd.MarkFlagRequired("user")
	_ = variantCmd.MarkFlagRequired("guide")
}
