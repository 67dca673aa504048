package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"questboss/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List daily quests and custom tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			snap := s.svc.Snapshot()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.H2.Render(ui.IconLoop+" Daily quests"))
			for _, d := range snap.Dailies {
				fmt.Fprintf(out, "- %-10s %s %s\n", ui.Key.Render(d.ID), d.Name, ui.Muted.Render(fmt.Sprintf("(+%d XP, %d dmg)", d.XPReward, d.BossDamage)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconQuest+" Custom tasks"))
			if len(snap.Tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
				return nil
			}
			for _, t := range snap.Tasks {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(ui.ShortID(t.ID)), t.Name, ui.Muted.Render(fmt.Sprintf("(+%d XP, %d dmg)", t.XPReward, t.BossDamage)))
			}
			return nil
		},
	}

	return cmd
}
