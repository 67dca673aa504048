package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questboss/internal/engine"
	"questboss/internal/ui"
)

func newAddCmd() *cobra.Command {
	var xp int
	var damage int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.svc.AddTask(ctx, args[0], xp, damage)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.Key.Render(ui.ShortID(t.ID)),
				t.Name,
				ui.Muted.Render(fmt.Sprintf("(+%d XP, %d dmg)", t.XPReward, t.BossDamage)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&xp, "xp", "x", engine.DefaultTaskXP, "XP reward (>= 0)")
	cmd.Flags().IntVarP(&damage, "damage", "d", engine.DefaultTaskDamage, "Boss damage (>= 0)")

	return cmd
}
