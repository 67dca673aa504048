package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questboss/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if s.journal == nil {
				return errors.New("history is disabled (QB_JOURNAL=false)")
			}
			list, err := s.journal.Recent(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "History"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing completed yet)"))
				return nil
			}
			for _, c := range list {
				line := fmt.Sprintf("%s %s %s %s",
					ui.Muted.Render(c.CompletedAt.Local().Format("2006-01-02 15:04")),
					ui.KindIcon(c.Kind),
					c.Name,
					ui.Muted.Render(fmt.Sprintf("(+%d XP, %d dmg vs %s, lvl %d)", c.XPAwarded, c.Damage, c.Boss, c.LevelAfter)))
				if c.Defeated {
					line += " " + ui.Gold.Render(ui.IconTrophy)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")

	return cmd
}
